package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeService_UpdateUsesPathID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, bob := f.employee(t, "bob")
	_, dan := f.employee(t, "dan")

	require.NoError(t, f.employees.Update(ctx, bob.ID, EmployeePatch{Specialty: ptr("laptops")}))
	require.NoError(t, f.employees.Update(ctx, bob.ID, EmployeePatch{ID: bob.ID, Specialty: ptr(" phones ")}))

	got, err := f.employees.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "phones", got.Specialty)

	err = f.employees.Update(ctx, bob.ID, EmployeePatch{ID: dan.ID, Specialty: ptr("tvs")})
	assertStatus(t, err, http.StatusBadRequest)
	untouched, err := f.employees.Get(ctx, dan.ID)
	require.NoError(t, err)
	assert.Equal(t, "printers", untouched.Specialty)
}

func TestEmployeeService_UpdateValidation(t *testing.T) {
	f := newFixture(t)
	_, bob := f.employee(t, "bob")

	assertStatus(t, f.employees.Update(context.Background(), bob.ID, EmployeePatch{}), http.StatusBadRequest)
	assertStatus(t, f.employees.Update(context.Background(), bob.ID, EmployeePatch{Specialty: ptr("  ")}), http.StatusBadRequest)
	assertStatus(t, f.employees.Update(context.Background(), 999, EmployeePatch{Specialty: ptr("x")}), http.StatusNotFound)
}

func TestEmployeeService_DeleteReleasesTickets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	staff, bob := f.employee(t, "bob")
	alice, _ := f.customer(t, "alice")
	ticket, err := f.tickets.Create(ctx, alice, CreateTicketInput{Description: "jammed tray"})
	require.NoError(t, err)
	_, err = f.tickets.Update(ctx, staff, ticket.ID, TicketPatch{Employee: ptr(bob.ID)})
	require.NoError(t, err)

	require.NoError(t, f.employees.Delete(ctx, bob.ID))

	_, err = f.employees.Get(ctx, bob.ID)
	assertStatus(t, err, http.StatusNotFound)
	got, err := f.tickets.Get(ctx, staff, ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Employee)
	assertStatus(t, f.employees.Delete(ctx, bob.ID), http.StatusNotFound)
}

func TestEmployeeService_CreateRegistersStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employee, err := f.employees.Create(ctx, EmployeeCreateInput{
		Username: "erin", Email: "erin@example.com", FirstName: "Erin", LastName: "Lee",
		Password: "pw", Specialty: "monitors",
	})
	require.NoError(t, err)
	assert.Equal(t, "Erin Lee", employee.FullName())

	user, err := f.store.Users().GetByID(ctx, employee.UserID)
	require.NoError(t, err)
	assert.True(t, user.IsStaff)

	_, err = f.employees.Create(ctx, EmployeeCreateInput{
		Username: "erin", Email: "other@example.com", FirstName: "E", LastName: "L", Password: "pw", Specialty: "x",
	})
	assertStatus(t, err, http.StatusBadRequest)

	list, err := f.employees.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCustomerService_ListAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, alice := f.customer(t, "alice")
	_, carol := f.customer(t, "carol")

	list, err := f.customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, alice.ID, list[0].ID)
	assert.Equal(t, carol.ID, list[1].ID)

	got, err := f.customers.Get(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cust carol", got.FullName())

	_, err = f.customers.Get(ctx, 999)
	assertStatus(t, err, http.StatusNotFound)
}

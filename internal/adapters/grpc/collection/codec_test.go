package collection

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
)

func TestEncode_UsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	s, err := Encode(employee.Employee{
		ID:         "7",
		Name:       "Ana",
		Salary:     42000.5,
		Status:     employee.StatusOnLeave,
		CompanyID:  "1",
		HireDate:   time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		Department: "Ventas",
	})
	require.NoError(t, err)

	fields := s.GetFields()
	assert.Equal(t, "7", fields["id"].GetStringValue())
	assert.Equal(t, 42000.5, fields["salary"].GetNumberValue())
	assert.Equal(t, "on-leave", fields["status"].GetStringValue())
	assert.Equal(t, "1", fields["companyId"].GetStringValue())
	assert.Equal(t, "2020-01-02T00:00:00Z", fields["hireDate"].GetStringValue())
}

func TestDecode_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	s, err := structpb.NewStruct(map[string]any{"name": "Ana", "status": "retired"})
	require.NoError(t, err)

	var e employee.Employee
	err = Decode(s, &e)
	assert.True(t, errors.Is(err, employee.ErrInvalidStatus), "got %v", err)
}

func TestDecode_NilIsEmptyObject(t *testing.T) {
	t.Parallel()

	var f employee.Filter
	require.NoError(t, Decode(nil, &f))
	assert.True(t, f.IsZero())
}

func TestUpdateRequest_PatchKeepsOnlySetFields(t *testing.T) {
	t.Parallel()

	salary := 1234.0
	s, err := Encode(UpdateRequest[employee.Patch]{ID: "3", Patch: employee.Patch{Salary: &salary}})
	require.NoError(t, err)

	patch := s.GetFields()["patch"].GetStructValue()
	require.NotNil(t, patch)
	assert.Len(t, patch.GetFields(), 1)

	var decoded UpdateRequest[employee.Patch]
	require.NoError(t, Decode(s, &decoded))
	assert.Equal(t, "3", decoded.ID)
	require.NotNil(t, decoded.Patch.Salary)
	assert.Equal(t, 1234.0, *decoded.Patch.Salary)
	assert.Nil(t, decoded.Patch.Name)
}

func TestDecodeList_Empty(t *testing.T) {
	t.Parallel()

	out, err := DecodeList[employee.Employee](nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	l, err := EncodeList[employee.Employee](nil)
	require.NoError(t, err)
	assert.Empty(t, l.GetValues())
}

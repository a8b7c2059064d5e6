package validate

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-store/internal/types"
)

func ptr[T any](v T) *T { return &v }

func validCreate() types.CreateStudentRequest {
	return types.CreateStudentRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Course:    "CS",
		Year:      types.FirstYear,
		Enrolled:  ptr(true),
	}
}

func TestStructCreateValid(t *testing.T) {
	for _, year := range types.Years {
		req := validCreate()
		req.Year = year
		assert.NoError(t, Struct(req), year)
	}

	req := validCreate()
	req.Enrolled = ptr(false)
	assert.NoError(t, Struct(req), "false is a valid enrolled value")
}

func TestStructCreateMissingFields(t *testing.T) {
	err := Struct(types.CreateStudentRequest{})
	require.Error(t, err)

	var ve *Errors
	require.True(t, errors.As(err, &ve))
	for _, field := range []string{"firstName", "lastName", "course", "year", "enrolled"} {
		assert.Contains(t, ve.Fields, field)
	}
}

func TestStructCreateRejectsUnknownYear(t *testing.T) {
	req := validCreate()
	req.Year = "Sixth Year"

	var ve *Errors
	require.True(t, errors.As(Struct(req), &ve))
	require.Len(t, ve.Fields, 1)
	assert.Contains(t, ve.Fields, "year")
}

func TestStructCreateNameLength(t *testing.T) {
	req := validCreate()
	req.FirstName = strings.Repeat("a", 255)
	assert.NoError(t, Struct(req))

	req.FirstName = strings.Repeat("a", 256)
	var ve *Errors
	require.True(t, errors.As(Struct(req), &ve))
	assert.Contains(t, ve.Fields, "firstName")
}

func TestStructUpdateOptionalFields(t *testing.T) {
	assert.NoError(t, Struct(types.UpdateStudentRequest{}), "empty update is valid")
	assert.NoError(t, Struct(types.UpdateStudentRequest{Course: ptr("Maths")}))
}

func TestStructUpdateSuppliedFieldsMustBeValid(t *testing.T) {
	err := Struct(types.UpdateStudentRequest{
		FirstName: ptr(""),
		Year:      ptr("Graduate"),
	})

	var ve *Errors
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "firstName")
	assert.Contains(t, ve.Fields, "year")
	assert.NotContains(t, ve.Fields, "lastName")
}

func TestFromDecodeError(t *testing.T) {
	var req types.CreateStudentRequest
	decodeErr := json.Unmarshal([]byte(`{"enrolled":"yes"}`), &req)
	require.Error(t, decodeErr)

	var ve *Errors
	require.True(t, errors.As(FromDecodeError(decodeErr), &ve))
	assert.Equal(t, []string{"enrolled must be true or false"}, ve.Fields["enrolled"])
}

func TestFromDecodeErrorPassesSyntaxErrorsThrough(t *testing.T) {
	var req types.CreateStudentRequest
	decodeErr := json.Unmarshal([]byte(`{not json`), &req)
	require.Error(t, decodeErr)

	err := FromDecodeError(decodeErr)
	var ve *Errors
	assert.False(t, errors.As(err, &ve))
	assert.Equal(t, decodeErr, err)
}

func TestErrorsMessageIsSorted(t *testing.T) {
	e := &Errors{}
	e.add("year", "year is bad")
	e.add("course", "course is bad")
	assert.Equal(t, "validation failed: course is bad, year is bad", e.Error())
}

func TestMergeKeepsFirstReasonPerField(t *testing.T) {
	e := &Errors{}
	e.add("enrolled", "enrolled must be true or false")
	e.Merge(&Errors{Fields: map[string][]string{
		"enrolled":  {"enrolled is a required field"},
		"firstName": {"firstName is a required field"},
	}})
	e.Merge(nil)

	assert.Equal(t, []string{"enrolled must be true or false"}, e.Fields["enrolled"])
	assert.Equal(t, []string{"firstName is a required field"}, e.Fields["firstName"])
}

func TestNullFields(t *testing.T) {
	var req types.UpdateStudentRequest
	got := NullFields([]byte(`{"firstName":null,"year": null ,"course":"CS"}`), &req)
	require.NotNil(t, got)
	assert.Equal(t, map[string][]string{
		"firstName": {"firstName is a required field"},
		"year":      {"year is a required field"},
	}, got.Fields)

	assert.Nil(t, NullFields([]byte(`{"course":"CS"}`), &req))
	assert.Nil(t, NullFields([]byte(`[1,2]`), &req))
}

func TestTrimStrings(t *testing.T) {
	create := types.CreateStudentRequest{FirstName: "  Ann ", LastName: "   ", Course: "CS"}
	TrimStrings(&create)
	assert.Equal(t, "Ann", create.FirstName)
	assert.Equal(t, "", create.LastName)

	update := types.UpdateStudentRequest{Course: ptr("\tMaths\n")}
	TrimStrings(&update)
	assert.Equal(t, "Maths", *update.Course)
	assert.Nil(t, update.FirstName)
}

func TestStructRejectsBlankAfterTrim(t *testing.T) {
	req := validCreate()
	req.Course = "   "
	TrimStrings(&req)

	var ve *Errors
	require.True(t, errors.As(Struct(req), &ve))
	assert.Contains(t, ve.Fields, "course")
}

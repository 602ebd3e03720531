package generator

import (
	"strings"

	"github.com/sunthewhat/certgen-api/type/shared/model"
)

// StudentRow is one mapped bulk record, consumed to create one certificate.
type StudentRow struct {
	StudentName    string
	CourseName     string
	CompletionDate string
	CustomData     map[string]string
}

// Lookup is an ordered list of candidate keys. Resolve returns the first
// non-empty value; when every candidate is empty it falls back to the last
// candidate's value (which may be an empty string) and reports whether that
// key was present at all.
type Lookup []string

func (l Lookup) Resolve(values map[string]string) (string, bool) {
	if len(l) == 0 {
		return "", false
	}
	for _, key := range l {
		if v := values[key]; v != "" {
			return v, true
		}
	}
	v, ok := values[l[len(l)-1]]
	return v, ok
}

// FieldLookup is the column precedence for a dynamic field: exact label,
// lower-cased label, then the canonical field type.
func FieldLookup(field model.TemplateField) Lookup {
	return Lookup{field.Label, strings.ToLower(field.Label), field.FieldType}
}

var (
	studentNameHeaders    = Lookup{"Name", "name"}
	courseNameHeaders     = Lookup{"Course", "course"}
	completionDateHeaders = Lookup{"Completion Date", "completion_date"}
)

// MapRow translates a raw CSV row into a StudentRow using the template's
// dynamic fields. Unmatched fields are left out of CustomData.
func MapRow(row Row, dynamicFields []model.TemplateField) StudentRow {
	custom := make(map[string]string, len(dynamicFields))
	for _, field := range dynamicFields {
		if value, ok := FieldLookup(field).Resolve(row); ok {
			custom[field.FieldType] = value
		}
	}

	return StudentRow{
		StudentName:    canonical(custom, row, model.FieldTypeStudentName, studentNameHeaders),
		CourseName:     canonical(custom, row, model.FieldTypeCourseName, courseNameHeaders),
		CompletionDate: canonical(custom, row, model.FieldTypeCompletionDate, completionDateHeaders),
		CustomData:     custom,
	}
}

func canonical(custom map[string]string, row Row, key string, headers Lookup) string {
	if v := custom[key]; v != "" {
		return v
	}
	v, _ := headers.Resolve(row)
	return v
}

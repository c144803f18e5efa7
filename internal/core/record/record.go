// Package record defines the document record domain type and its field set.
package record

import (
	"errors"
	"fmt"
	"maps"
)

// ErrUnknownField is returned when a field name is not one of Fields.
var ErrUnknownField = errors.New("unknown field")

// Field names as they appear on the wire and in the grid.
const (
	FieldCompanySigDate        = "companySigDate"
	FieldCompanySignatureName  = "companySignatureName"
	FieldDocumentName          = "documentName"
	FieldDocumentStatus        = "documentStatus"
	FieldDocumentType          = "documentType"
	FieldEmployeeNumber        = "employeeNumber"
	FieldEmployeeSigDate       = "employeeSigDate"
	FieldEmployeeSignatureName = "employeeSignatureName"
)

// Fields lists the editable fields in column order.
var Fields = []string{
	FieldCompanySigDate,
	FieldCompanySignatureName,
	FieldDocumentName,
	FieldDocumentStatus,
	FieldDocumentType,
	FieldEmployeeNumber,
	FieldEmployeeSigDate,
	FieldEmployeeSignatureName,
}

var labels = map[string]string{
	FieldCompanySigDate:        "Company Sig Date",
	FieldCompanySignatureName:  "Company Signature Name",
	FieldDocumentName:          "Document Name",
	FieldDocumentStatus:        "Document Status",
	FieldDocumentType:          "Document Type",
	FieldEmployeeNumber:        "Employee Number",
	FieldEmployeeSigDate:       "Employee Sig Date",
	FieldEmployeeSignatureName: "Employee Signature Name",
}

// Record is a single document record. All fields other than ID are opaque
// strings; no semantic validation is applied.
type Record struct {
	ID                    string `json:"id"`
	CompanySigDate        string `json:"companySigDate"`
	CompanySignatureName  string `json:"companySignatureName"`
	DocumentName          string `json:"documentName"`
	DocumentStatus        string `json:"documentStatus"`
	DocumentType          string `json:"documentType"`
	EmployeeNumber        string `json:"employeeNumber"`
	EmployeeSigDate       string `json:"employeeSigDate"`
	EmployeeSignatureName string `json:"employeeSignatureName"`
}

// Values maps field names to values. It is used for edit drafts, patches
// and request payloads.
type Values map[string]string

// Clone returns a copy of v. A nil receiver yields an empty map.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	maps.Copy(out, v)
	return out
}

// Merge returns a new Values holding v overlaid with each of others in order.
func (v Values) Merge(others ...Values) Values {
	out := v.Clone()
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// Blank returns Values with every field set to the empty string.
func Blank() Values {
	out := make(Values, len(Fields))
	for _, f := range Fields {
		out[f] = ""
	}
	return out
}

// ParseField validates a field name.
func ParseField(name string) (string, error) {
	if _, ok := labels[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return name, nil
}

// Label returns the column header for a field, or the field name itself
// when unknown.
func Label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

// Get returns the value of a field, or "" for unknown fields.
func (r Record) Get(field string) string {
	switch field {
	case FieldCompanySigDate:
		return r.CompanySigDate
	case FieldCompanySignatureName:
		return r.CompanySignatureName
	case FieldDocumentName:
		return r.DocumentName
	case FieldDocumentStatus:
		return r.DocumentStatus
	case FieldDocumentType:
		return r.DocumentType
	case FieldEmployeeNumber:
		return r.EmployeeNumber
	case FieldEmployeeSigDate:
		return r.EmployeeSigDate
	case FieldEmployeeSignatureName:
		return r.EmployeeSignatureName
	}
	return ""
}

func (r *Record) set(field, value string) {
	switch field {
	case FieldCompanySigDate:
		r.CompanySigDate = value
	case FieldCompanySignatureName:
		r.CompanySignatureName = value
	case FieldDocumentName:
		r.DocumentName = value
	case FieldDocumentStatus:
		r.DocumentStatus = value
	case FieldDocumentType:
		r.DocumentType = value
	case FieldEmployeeNumber:
		r.EmployeeNumber = value
	case FieldEmployeeSigDate:
		r.EmployeeSigDate = value
	case FieldEmployeeSignatureName:
		r.EmployeeSignatureName = value
	}
}

// Values returns every field of r keyed by field name.
func (r Record) Values() Values {
	out := make(Values, len(Fields))
	for _, f := range Fields {
		out[f] = r.Get(f)
	}
	return out
}

// Apply returns a copy of r with v merged in. Unknown keys are ignored and
// the ID is never touched.
func (r Record) Apply(v Values) Record {
	for field, value := range v {
		r.set(field, value)
	}
	return r
}

// FromValues builds a Record with the given id.
func FromValues(id string, v Values) Record {
	return Record{ID: id}.Apply(v)
}

// Payload builds a request body from v: all fields present, missing ones
// empty, and no id.
func Payload(v Values) map[string]string {
	out := make(map[string]string, len(Fields))
	for _, f := range Fields {
		out[f] = v[f]
	}
	return out
}

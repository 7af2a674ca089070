// Package form maps dynamic admission-form payloads onto the fixed
// application record and checks submitted values against field definitions.
package form

import "school-admissions/backend/internal/model"

// Group snapshot grouping of application columns
type Group string

const (
	GroupPersonal  Group = "personal"
	GroupContact   Group = "contact"
	GroupParent    Group = "parent"
	GroupAcademic  Group = "academic"
	GroupDocuments Group = "documents"
)

// Groups in snapshot order
var Groups = []Group{GroupPersonal, GroupContact, GroupParent, GroupAcademic, GroupDocuments}

type column struct {
	name   string
	group  Group
	maxLen int
	ref    func(a *model.Application) *string
}

// catalogue lists every payload key backed by an applications column.
// The order is the order fields appear in snapshots and exports.
var catalogue = []column{
	{"firstName", GroupPersonal, 100, func(a *model.Application) *string { return &a.FirstName }},
	{"middleName", GroupPersonal, 100, func(a *model.Application) *string { return &a.MiddleName }},
	{"lastName", GroupPersonal, 100, func(a *model.Application) *string { return &a.LastName }},
	{"dateOfBirth", GroupPersonal, 10, func(a *model.Application) *string { return &a.DateOfBirth }},
	{"gender", GroupPersonal, 20, func(a *model.Application) *string { return &a.Gender }},
	{"nationality", GroupPersonal, 100, func(a *model.Application) *string { return &a.Nationality }},
	{"religion", GroupPersonal, 100, func(a *model.Application) *string { return &a.Religion }},
	{"bloodGroup", GroupPersonal, 10, func(a *model.Application) *string { return &a.BloodGroup }},

	{"phone", GroupContact, 30, func(a *model.Application) *string { return &a.Phone }},
	{"alternatePhone", GroupContact, 30, func(a *model.Application) *string { return &a.AlternatePhone }},
	{"address", GroupContact, 255, func(a *model.Application) *string { return &a.Address }},
	{"city", GroupContact, 100, func(a *model.Application) *string { return &a.City }},
	{"state", GroupContact, 100, func(a *model.Application) *string { return &a.State }},
	{"postalCode", GroupContact, 20, func(a *model.Application) *string { return &a.PostalCode }},

	{"fatherName", GroupParent, 150, func(a *model.Application) *string { return &a.FatherName }},
	{"fatherOccupation", GroupParent, 150, func(a *model.Application) *string { return &a.FatherOccupation }},
	{"fatherPhone", GroupParent, 30, func(a *model.Application) *string { return &a.FatherPhone }},
	{"fatherEmail", GroupParent, 255, func(a *model.Application) *string { return &a.FatherEmail }},
	{"motherName", GroupParent, 150, func(a *model.Application) *string { return &a.MotherName }},
	{"motherOccupation", GroupParent, 150, func(a *model.Application) *string { return &a.MotherOccupation }},
	{"motherPhone", GroupParent, 30, func(a *model.Application) *string { return &a.MotherPhone }},
	{"motherEmail", GroupParent, 255, func(a *model.Application) *string { return &a.MotherEmail }},
	{"guardianName", GroupParent, 150, func(a *model.Application) *string { return &a.GuardianName }},
	{"guardianRelation", GroupParent, 50, func(a *model.Application) *string { return &a.GuardianRelation }},
	{"guardianPhone", GroupParent, 30, func(a *model.Application) *string { return &a.GuardianPhone }},

	{"applyingForGrade", GroupAcademic, 50, func(a *model.Application) *string { return &a.ApplyingForGrade }},
	{"previousSchool", GroupAcademic, 200, func(a *model.Application) *string { return &a.PreviousSchool }},
	{"previousGrade", GroupAcademic, 50, func(a *model.Application) *string { return &a.PreviousGrade }},
	{"previousPercentage", GroupAcademic, 20, func(a *model.Application) *string { return &a.PreviousPercentage }},

	{"photoUrl", GroupDocuments, 500, func(a *model.Application) *string { return &a.PhotoURL }},
	{"birthCertificateUrl", GroupDocuments, 500, func(a *model.Application) *string { return &a.BirthCertificateURL }},
	{"transferCertificateUrl", GroupDocuments, 500, func(a *model.Application) *string { return &a.TransferCertificateURL }},
	{"reportCardUrl", GroupDocuments, 500, func(a *model.Application) *string { return &a.ReportCardURL }},
}

var byName = func() map[string]column {
	m := make(map[string]column, len(catalogue))
	for _, c := range catalogue {
		m[c.name] = c
	}
	return m
}()

// ColumnFor reports the snapshot group of a column-backed payload key
func ColumnFor(name string) (Group, bool) {
	c, ok := byName[name]
	return c.group, ok
}

// Columns returns the column-backed payload keys in catalogue order
func Columns() []string {
	names := make([]string, len(catalogue))
	for i, c := range catalogue {
		names[i] = c.name
	}
	return names
}

// Value reads the column behind name; ok is false for keys without a column
func Value(app *model.Application, name string) (string, bool) {
	c, ok := byName[name]
	if !ok {
		return "", false
	}
	return *c.ref(app), true
}

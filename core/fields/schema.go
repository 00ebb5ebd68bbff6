package fields

import "github.com/XayHanmonty/id-verification-poc/core/record"

// Field binds a canonical record key to the labels a model may print for it.
// Aliases are tried in order; the first one that matches wins.
type Field struct {
	Name    string
	Aliases []string
}

// TopLevel lists the fields stored directly on the record, in extraction
// order.
var TopLevel = []Field{
	{Name: record.KeyDocumentType, Aliases: []string{"Document Type", "Type"}},
	{Name: record.KeyIssuingCountry, Aliases: []string{"Issuing Country", "Country"}},
	{Name: record.KeyFullName, Aliases: []string{"Full Name", "Name"}},
	{Name: record.KeyFirstName, Aliases: []string{"First Name"}},
	{Name: record.KeyLastName, Aliases: []string{"Last Name"}},
	{Name: record.KeyAddress, Aliases: []string{"Address"}},
	{Name: record.KeyDateOfBirth, Aliases: []string{"Date of Birth", "DOB", "Birth"}},
	{Name: record.KeyExpirationDate, Aliases: []string{"Expiration Date", "Expires"}},
	{Name: record.KeyIssueDate, Aliases: []string{"Issue Date", "Issued"}},
	{Name: record.KeyGender, Aliases: []string{"Gender", "Sex"}},
	{Name: record.KeyDocumentNumber, Aliases: []string{"Document Number", "ID Number", "License Number", "Number"}},
}

// Secondary lists the attributes collected under additional_info.
var Secondary = []Field{
	{Name: record.KeyHeight, Aliases: []string{"Height"}},
	{Name: record.KeyEyeColor, Aliases: []string{"Eye", "Eyes", "Eye Color"}},
	{Name: record.KeyHairColor, Aliases: []string{"Hair", "Hair Color"}},
	{Name: record.KeyWeight, Aliases: []string{"Weight"}},
	{Name: record.KeyClass, Aliases: []string{"Class", "License Class"}},
}

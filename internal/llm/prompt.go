package llm

import "strings"

// BuildExtractionPrompt composes the single fixed prompt for one card's text.
// The tie-break rules are part of the contract: office/main numbers go to
// "telephone", mobile numbers to "phone", a lone number to "telephone", and
// kanji renderings win over romanized duplicates.
func BuildExtractionPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Extract the following business card information from the given text and return the result as a structured JSON object.\n")
	b.WriteString("For phone numbers: if there are multiple numbers, put the office/main number in \"telephone\" and the mobile/cell number in \"phone\".\n")
	b.WriteString("If there is only one number, put it in \"telephone\".\n")
	b.WriteString("Do not return repeating information; if a field appears in both kanji and roman letters, prioritize the kanji rendering.\n")
	b.WriteString("Do not include anything else, only the JSON object.\n")
	b.WriteString("\nText:\n")
	b.WriteString(text)
	b.WriteString("\n\nStructured JSON:\n")
	b.WriteString(`{
    "organization": "Company Name",
    "department": "Department Name",
    "name": "Full Name",
    "address": "Postal Address",
    "telephone": "Office/Main Phone Number",
    "phone": "Mobile/Cell Phone Number",
    "fax": "Fax Number",
    "email": "Email Address",
    "website": "Website URL"
}`)
	return b.String()
}

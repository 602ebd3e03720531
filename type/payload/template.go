package payload

type TemplateInputField struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	FieldType    string `json:"field_type"`
	DefaultValue string `json:"default_value"`
}

type TemplateFieldsPayload struct {
	TemplateID string               `json:"template_id"`
	Name       string               `json:"name"`
	Fields     []TemplateInputField `json:"fields"`
}

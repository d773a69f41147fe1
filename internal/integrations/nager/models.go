package nager

// Holiday модель публичного праздника из Nager.Date API v3
type Holiday struct {
	Date        string `json:"date"` // YYYY-MM-DD
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Global      bool   `json:"global"`
}

// DisplayName возвращает имя праздника для сообщения пользователю:
// локализованное имя, иначе английское, иначе пустая строка
func (h Holiday) DisplayName() string {
	if h.LocalName != "" {
		return h.LocalName
	}
	return h.Name
}

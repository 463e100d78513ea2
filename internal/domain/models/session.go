package models

// Session офлайн-сессия магазина, сохраненная платформой при установке приложения
type Session struct {
	Shop        string `json:"shop"`
	AccessToken string `json:"accessToken"`
	Scope       string `json:"scope,omitempty"`
}

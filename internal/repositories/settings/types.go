package settings

type GetSettingInput struct {
	GuildID string
	Key     string
}

type SetSettingInput struct {
	GuildID string
	Key     string
	Value   string
}

type GetAllSettingsInput struct {
	GuildID string
}

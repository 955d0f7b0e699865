package domain

type ChatType string

const (
	ChatTypePrivate       ChatType = "private"
	ChatTypeDistrictGroup ChatType = "district_group"
)

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

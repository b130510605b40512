package rocketchat

import (
	"context"
	"io"
)

// ChannelsClient binds the channels.* endpoints.
type ChannelsClient interface {
	List(ctx context.Context, opts *ListOptions) (*Pager[Channel], error)
	ListJoined(ctx context.Context, opts *ListOptions) (*Pager[Channel], error)
	Info(ctx context.Context, room RoomSelector) (*ChannelResponse, error)
	History(ctx context.Context, roomID string, opts *ListOptions) (*Pager[Message], error)
	Members(ctx context.Context, room RoomSelector, opts *ListOptions) (*Pager[User], error)
	Create(ctx context.Context, name string, opts *CreateRoomOptions) (*ChannelResponse, error)
	Delete(ctx context.Context, room RoomSelector) error
	SetTopic(ctx context.Context, roomID, topic string) error
}

// GroupsClient binds the groups.* endpoints.
type GroupsClient interface {
	List(ctx context.Context, opts *ListOptions) (*Pager[Group], error)
	ListAll(ctx context.Context, opts *ListOptions) (*Pager[Group], error)
	Info(ctx context.Context, room RoomSelector) (*GroupResponse, error)
	Create(ctx context.Context, name string, opts *CreateRoomOptions) (*GroupResponse, error)
}

// UsersClient binds the users.* endpoints.
type UsersClient interface {
	List(ctx context.Context, opts *ListOptions) (*Pager[User], error)
	Info(ctx context.Context, user UserSelector) (*UserResponse, error)
	Create(ctx context.Context, user *NewUser) (*UserResponse, error)
	Register(ctx context.Context, user *NewUser) (*UserResponse, error)
	SetAvatar(ctx context.Context, avatar string, extra Params) error
	SetAvatarFile(ctx context.Context, name string, content io.Reader, extra Params) error
	Delete(ctx context.Context, userID string) error
}

// ChatClient binds the chat.* endpoints.
type ChatClient interface {
	PostMessage(ctx context.Context, msg *PostMessage) (*MessageResponse, error)
	Delete(ctx context.Context, roomID, messageID string) (*DeleteMessageResponse, error)
}

// DMClient binds the dm.* endpoints.
type DMClient interface {
	List(ctx context.Context, opts *ListOptions) (*Pager[IM], error)
	History(ctx context.Context, roomID string, opts *ListOptions) (*Pager[Message], error)
	Create(ctx context.Context, username string) (*RoomResponse, error)
}

// IntegrationsClient binds the integrations.* endpoints.
type IntegrationsClient interface {
	Create(ctx context.Context, integration *NewIntegration) (*IntegrationResponse, error)
	List(ctx context.Context, opts *ListOptions) (*Pager[Integration], error)
	Update(ctx context.Context, integrationID string, integration *NewIntegration) (*IntegrationResponse, error)
	Remove(ctx context.Context, integrationType, integrationID string) error
}

// RoomsClient binds the rooms.* endpoints.
type RoomsClient interface {
	Info(ctx context.Context, room RoomSelector) (*RoomResponse, error)
	Upload(ctx context.Context, roomID string, file File, extra Params) (*MessageResponse, error)
}

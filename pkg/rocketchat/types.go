package rocketchat

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Envelope is the common part of every Rocket.Chat response.
type Envelope struct {
	Success bool `json:"success" yaml:"success"`
}

// ListEnvelope carries the pagination counters returned by list endpoints.
type ListEnvelope struct {
	Envelope `yaml:",inline"`

	Count  int `json:"count"  yaml:"count"`
	Offset int `json:"offset" yaml:"offset"`
	Total  int `json:"total"  yaml:"total"`
}

// Info represents the /api/info response.
type Info struct {
	Envelope `yaml:",inline"`

	Version string `json:"version" yaml:"version"`
}

// Semver parses the server version.
func (i *Info) Semver() (*semver.Version, error) {
	version, err := semver.NewVersion(i.Version)
	if err != nil {
		return nil, fmt.Errorf("parsing server version %q: %w", i.Version, err)
	}

	return version, nil
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Status string    `json:"status" yaml:"status"`
	Data   LoginData `json:"data"   yaml:"data"`
}

// LoginData carries the credentials issued by login.
type LoginData struct {
	AuthToken string `json:"authToken" yaml:"authToken"`
	UserID    string `json:"userId"    yaml:"userId"`
	Me        *User  `json:"me,omitempty" yaml:"me,omitempty"`
}

// Email is one of a user's addresses.
type Email struct {
	Address  string `json:"address"  yaml:"address"`
	Verified bool   `json:"verified" yaml:"verified"`
}

// User represents a Rocket.Chat user.
type User struct {
	ID        string     `json:"_id"                  yaml:"id"`
	Username  string     `json:"username"             yaml:"username"`
	Name      string     `json:"name,omitempty"       yaml:"name,omitempty"`
	Type      string     `json:"type,omitempty"       yaml:"type,omitempty"`
	Status    string     `json:"status,omitempty"     yaml:"status,omitempty"`
	Active    bool       `json:"active"               yaml:"active"`
	Roles     []string   `json:"roles,omitempty"      yaml:"roles,omitempty"`
	Emails    []Email    `json:"emails,omitempty"     yaml:"emails,omitempty"`
	UTCOffset float64    `json:"utcOffset,omitempty"  yaml:"utcOffset,omitempty"`
	UpdatedAt *time.Time `json:"_updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// UserRef is the compact user embedded in rooms and messages.
type UserRef struct {
	ID       string `json:"_id"            yaml:"id"`
	Username string `json:"username"       yaml:"username"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Room represents a channel, private group or direct message room.
type Room struct {
	ID         string     `json:"_id"                  yaml:"id"`
	Name       string     `json:"name,omitempty"       yaml:"name,omitempty"`
	Type       string     `json:"t"                    yaml:"type"`
	Topic      string     `json:"topic,omitempty"      yaml:"topic,omitempty"`
	ReadOnly   bool       `json:"ro,omitempty"         yaml:"readOnly,omitempty"`
	Default    bool       `json:"default,omitempty"    yaml:"default,omitempty"`
	Messages   int        `json:"msgs"                 yaml:"messages"`
	UsersCount int        `json:"usersCount,omitempty" yaml:"usersCount,omitempty"`
	Usernames  []string   `json:"usernames,omitempty"  yaml:"usernames,omitempty"`
	Owner      *UserRef   `json:"u,omitempty"          yaml:"owner,omitempty"`
	UpdatedAt  *time.Time `json:"_updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Channel is a public room.
type Channel = Room

// Group is a private room.
type Group = Room

// IM is a direct message room.
type IM = Room

// Message represents a chat message.
type Message struct {
	ID        string     `json:"_id"                  yaml:"id"`
	RoomID    string     `json:"rid"                  yaml:"roomId"`
	Text      string     `json:"msg"                  yaml:"text"`
	Timestamp *time.Time `json:"ts,omitempty"         yaml:"ts,omitempty"`
	User      *UserRef   `json:"u,omitempty"          yaml:"user,omitempty"`
	Alias     string     `json:"alias,omitempty"      yaml:"alias,omitempty"`
	UpdatedAt *time.Time `json:"_updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Integration represents an incoming or outgoing webhook.
type Integration struct {
	ID            string   `json:"_id"                yaml:"id"`
	Type          string   `json:"type"               yaml:"type"`
	Name          string   `json:"name"               yaml:"name"`
	Enabled       bool     `json:"enabled"            yaml:"enabled"`
	Username      string   `json:"username"           yaml:"username"`
	Channel       []string `json:"channel"            yaml:"channel"`
	ScriptEnabled bool     `json:"scriptEnabled"      yaml:"scriptEnabled"`
	Event         string   `json:"event,omitempty"    yaml:"event,omitempty"`
	URLs          []string `json:"urls,omitempty"     yaml:"urls,omitempty"`
	Token         string   `json:"token,omitempty"    yaml:"token,omitempty"`
}

// Integration types accepted by integrations.create.
const (
	IntegrationWebhookIncoming = "webhook-incoming"
	IntegrationWebhookOutgoing = "webhook-outgoing"
)

// ChannelResponse wraps a single channel.
type ChannelResponse struct {
	Envelope `yaml:",inline"`

	Channel Channel `json:"channel" yaml:"channel"`
}

// GroupResponse wraps a single private group.
type GroupResponse struct {
	Envelope `yaml:",inline"`

	Group Group `json:"group" yaml:"group"`
}

// RoomResponse wraps a single room.
type RoomResponse struct {
	Envelope `yaml:",inline"`

	Room Room `json:"room" yaml:"room"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Envelope `yaml:",inline"`

	User User `json:"user" yaml:"user"`
}

// MessageResponse wraps a single message.
type MessageResponse struct {
	Envelope `yaml:",inline"`

	Timestamp any     `json:"ts,omitempty"      yaml:"ts,omitempty"`
	Channel   string  `json:"channel,omitempty" yaml:"channel,omitempty"`
	Message   Message `json:"message"           yaml:"message"`
}

// DeleteMessageResponse is returned by chat.delete.
type DeleteMessageResponse struct {
	Envelope `yaml:",inline"`

	ID string `json:"_id" yaml:"id"`
	TS any    `json:"ts"  yaml:"ts"`
}

// IntegrationResponse wraps a single integration.
type IntegrationResponse struct {
	Envelope `yaml:",inline"`

	Integration Integration `json:"integration" yaml:"integration"`
}

// SpotlightResult is returned by spotlight.
type SpotlightResult struct {
	Envelope `yaml:",inline"`

	Users []User `json:"users" yaml:"users"`
	Rooms []Room `json:"rooms" yaml:"rooms"`
}

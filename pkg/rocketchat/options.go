package rocketchat

// ListOptions are the common options of paginated listings.
type ListOptions struct {
	// Pagination is handled by the Pager and never sent as-is.
	Pagination PaginationOptions `mapstructure:"-"`

	// Sort is a JSON object, e.g. `{"name": 1}`.
	Sort string `mapstructure:"sort,omitempty"`
	// Fields is a JSON projection, e.g. `{"name": 1, "_id": 0}`.
	Fields string `mapstructure:"fields,omitempty"`
	// Query is a JSON filter, e.g. `{"active": true}`.
	Query string `mapstructure:"query,omitempty"`

	// Extra is sent alongside; explicit fields win on collision.
	Extra Params `mapstructure:"-"`
}

// Params converts the options to query parameters, without pagination.
func (o *ListOptions) Params() (Params, error) {
	if o == nil {
		return Params{}, nil
	}

	params, err := ParamsFrom(o)
	if err != nil {
		return nil, err
	}

	return params.With(o.Extra), nil
}

// PaginationOptions returns the pagination window, defaulted when o is nil.
func (o *ListOptions) PaginationOptions() PaginationOptions {
	if o == nil {
		return DefaultPaginationOptions()
	}

	return o.Pagination
}

// RoomSelector identifies a room by id or by name. RoomID wins when both are set.
type RoomSelector struct {
	RoomID   string `mapstructure:"roomId,omitempty"   validate:"required_without=RoomName"`
	RoomName string `mapstructure:"roomName,omitempty"`
}

// RoomByID selects a room by id.
func RoomByID(id string) RoomSelector {
	return RoomSelector{RoomID: id}
}

// RoomByName selects a room by name.
func RoomByName(name string) RoomSelector {
	return RoomSelector{RoomName: name}
}

// Params returns the single parameter identifying the room.
func (s RoomSelector) Params() (Params, error) {
	err := Validate(&s)
	if err != nil {
		return nil, err
	}

	if s.RoomID != "" {
		return Params{"roomId": s.RoomID}, nil
	}

	return Params{"roomName": s.RoomName}, nil
}

// UserSelector identifies a user by id or by username. UserID wins when both are set.
type UserSelector struct {
	UserID   string `mapstructure:"userId,omitempty"   validate:"required_without=Username"`
	Username string `mapstructure:"username,omitempty"`
}

// UserByID selects a user by id.
func UserByID(id string) UserSelector {
	return UserSelector{UserID: id}
}

// UserByName selects a user by username.
func UserByName(username string) UserSelector {
	return UserSelector{Username: username}
}

// Params returns the single parameter identifying the user.
func (s UserSelector) Params() (Params, error) {
	err := Validate(&s)
	if err != nil {
		return nil, err
	}

	if s.UserID != "" {
		return Params{"userId": s.UserID}, nil
	}

	return Params{"username": s.Username}, nil
}

// CreateRoomOptions are the optional fields of channels.create and groups.create.
type CreateRoomOptions struct {
	Members  []string `mapstructure:"members,omitempty"`
	ReadOnly bool     `mapstructure:"readOnly,omitempty"`
	Extra    Params   `mapstructure:"-"`
}

// Params converts the options to body parameters.
func (o *CreateRoomOptions) Params() (Params, error) {
	if o == nil {
		return Params{}, nil
	}

	params, err := ParamsFrom(o)
	if err != nil {
		return nil, err
	}

	return params.With(o.Extra), nil
}

// NewUser holds the fields of users.create and users.register.
type NewUser struct {
	Email    string `mapstructure:"email"    validate:"required,email"`
	Name     string `mapstructure:"name"     validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Username string `mapstructure:"username" validate:"required"`
	Extra    Params `mapstructure:"-"`
}

// Params converts the user to body parameters.
func (u *NewUser) Params() (Params, error) {
	err := Validate(u)
	if err != nil {
		return nil, err
	}

	params, err := ParamsFrom(u)
	if err != nil {
		return nil, err
	}

	return params.With(u.Extra), nil
}

// PostMessage holds the fields of chat.postMessage. At least one of RoomID
// and Channel is required; both are sent when both are set.
type PostMessage struct {
	Text    string `mapstructure:"text"`
	RoomID  string `mapstructure:"roomId,omitempty"  validate:"required_without=Channel"`
	Channel string `mapstructure:"channel,omitempty"`
	Alias   string `mapstructure:"alias,omitempty"`
	Emoji   string `mapstructure:"emoji,omitempty"`
	Avatar  string `mapstructure:"avatar,omitempty"`
	Extra   Params `mapstructure:"-"`
}

// NewIntegration holds the fields of integrations.create and integrations.update.
type NewIntegration struct {
	Type          string   `mapstructure:"type"`
	Name          string   `mapstructure:"name"`
	Enabled       bool     `mapstructure:"enabled"`
	Username      string   `mapstructure:"username"`
	Channel       string   `mapstructure:"channel"`
	ScriptEnabled bool     `mapstructure:"scriptEnabled"`
	Event         string   `mapstructure:"event,omitempty"`
	URLs          []string `mapstructure:"urls,omitempty"`
	Extra         Params   `mapstructure:"-"`
}

package models

// Client is an investor registered in the ledger. JSON names follow the
// wire contract of the existing front end.
type Client struct {
	// ID is the database identity of the client.
	ID int64 `json:"id"`

	// Name must be at least three characters long.
	Name string `json:"nome"`

	// Email is unique across clients.
	Email string `json:"email"`

	// Phone is optional and formatted as "(99) 99999-9999".
	Phone *string `json:"telefone,omitempty"`

	// Status marks the client active; new clients are active unless told
	// otherwise.
	Status bool `json:"status"`
}

// ClientView is a client as returned by read operations. AllocationCount
// is the ciphertext token of the client's number of allocations and is
// recomputed on every read.
type ClientView struct {
	Client
	AllocationCount string `json:"numeroAlocacoes"`
}

// ClientList is one page of clients together with the number of clients
// matching the same filter.
type ClientList struct {
	Clients []ClientView `json:"clientes"`
	Total   int64        `json:"total"`
}

// ClientRequest is the body of a client creation request. Status is a
// pointer so that an absent field can default to active.
type ClientRequest struct {
	Name   string  `json:"nome"`
	Email  string  `json:"email"`
	Phone  *string `json:"telefone,omitempty"`
	Status *bool   `json:"status,omitempty"`
}

// ToClient converts the request into a [Client], applying the active
// status default.
func (r ClientRequest) ToClient() Client {
	status := true
	if r.Status != nil {
		status = *r.Status
	}

	return Client{
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Status: status,
	}
}

// ClientUpdate describes a partial update of a client. Only non-nil fields
// are written.
type ClientUpdate struct {
	ID     int64   `json:"-"`
	Name   *string `json:"nome,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"telefone,omitempty"`
	Status *bool   `json:"status,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u ClientUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Status == nil
}

// ClientRecord is a stored client together with its plain allocation count.
// It never leaves the server; the count is obfuscated before responses are
// built.
type ClientRecord struct {
	Client
	AllocationCount int64
}

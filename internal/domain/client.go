package domain

// ClientIdentity is the customer record kept in the browsing session after login.
type ClientIdentity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Street   string `json:"street,omitempty"`
	Number   string `json:"number,omitempty"`
	Comp     string `json:"comp,omitempty"`
	District string `json:"district,omitempty"`
	CEP      string `json:"cep,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// Registration is the sign-up form sent to the backend.
type Registration struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Street   string `json:"street"`
	Number   string `json:"number"`
	Comp     string `json:"comp"`
	District string `json:"district"`
	CEP      string `json:"cep"`
	City     string `json:"city"`
	Password string `json:"password"`
	State    string `json:"state"`
}

package request

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name      string  `json:"nome" binding:"required,max=255"`
	CPF       *string `json:"cpf"`
	Phone     *string `json:"telefone" binding:"omitempty,max=30"`
	Address   *string `json:"endereco"`
	District  *string `json:"bairro" binding:"omitempty,max=120"`
	City      *string `json:"cidade" binding:"omitempty,max=120"`
	BirthDate *string `json:"data_nascimento"` // YYYY-MM-DD
}

// UpdateClientRequest represents a client update request
type UpdateClientRequest struct {
	Name      *string `json:"nome" binding:"omitempty,max=255"`
	CPF       *string `json:"cpf"`
	Phone     *string `json:"telefone" binding:"omitempty,max=30"`
	Address   *string `json:"endereco"`
	District  *string `json:"bairro" binding:"omitempty,max=120"`
	City      *string `json:"cidade" binding:"omitempty,max=120"`
	BirthDate *string `json:"data_nascimento"`
}

package entity

import "time"

// Endereco is owned by exactly one profile row; there is no sharing.
type Endereco struct {
	ID          int64
	Logradouro  string
	Numero      string
	Complemento string
	Bairro      string
	Cidade      string
	Estado      string
	CEP         string
}

// Cliente is the role-specific extension of a Usuario with Tipo=Cliente.
// Its presence marks onboarding as finished for a client account.
type Cliente struct {
	ID             int64
	IDUsuario      int64
	Nome           string
	Telefone       string
	CPF            string
	DataNascimento *time.Time
	IDEndereco     int64
}

// Vendedor is the role-specific extension for Tipo=Vendedor.
type Vendedor struct {
	ID                   int64
	IDUsuario            int64
	NomeLoja             string
	CNPJ                 string
	Telefone             string
	Fundacao             *time.Time
	HorarioFuncionamento string
	NomeResponsavel      string
	CPFResponsavel       string
	BreveDescricao       string
	LogotipoURL          string
	WebsiteRedesSociais  string
	IDCategoriaLoja      int64
	IDEndereco           int64
}

// VendedorUpdate carries the optional fields of a partial seller update.
// Nil means "leave unchanged".
type VendedorUpdate struct {
	NomeLoja             *string
	CNPJ                 *string
	Telefone             *string
	HorarioFuncionamento *string
	NomeResponsavel      *string
	CPFResponsavel       *string
	BreveDescricao       *string
	LogotipoURL          *string
	WebsiteRedesSociais  *string
	IDCategoriaLoja      *int64
}

// AvaliacaoLoja is a store rating left for a seller.
type AvaliacaoLoja struct {
	ID         int64
	IDVendedor int64
	Nota       int
	Comentario string
	CreatedAt  time.Time
}

// IndicacaoVendedor is a seller referral submitted by a client or a seller.
type IndicacaoVendedor struct {
	ID               int64
	IDCliente        *int64
	IDVendedor       *int64
	NomeIndicado     string
	EmailIndicado    string
	TelefoneIndicado string
	Mensagem         string
	CreatedAt        time.Time
}

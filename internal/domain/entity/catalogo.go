package entity

import "time"

type CategoriaLoja struct {
	ID        int64  `json:"ID_CategoriaLoja"`
	Nome      string `json:"NomeCategoria"`
	Descricao string `json:"Descricao"`
}

type SubcategoriaProduto struct {
	ID              int64  `json:"ID_Subcategoria"`
	Nome            string `json:"NomeSubcategoria"`
	IDCategoriaLoja int64  `json:"ID_CategoriaLoja"`
}

// OfertaListada is the joined row returned by seller product listings and the
// public search: product, variation, offer and image flattened together.
type OfertaListada struct {
	IDProduto            int64   `json:"ID_Produto"`
	NomeProduto          string  `json:"NomeProduto"`
	Descricao            string  `json:"Descricao"`
	IDVariacao           int64   `json:"ID_Variacao"`
	NomeVariacao         string  `json:"NomeVariacao"`
	ValorVariacao        string  `json:"ValorVariacao"`
	Preco                float64 `json:"Preco"`
	QuantidadeDisponivel int     `json:"QuantidadeDisponivel"`
	NomeLoja             string  `json:"NomeLoja,omitempty"`
	NomeCategoria        *string `json:"NomeCategoria,omitempty"`
	URLImagem            *string `json:"URL_Imagem,omitempty"`
}

// ProdutoMonitorado is one competitor page snapshot stored by the monitoring
// stub. The real scraping pipeline lives outside this service.
type ProdutoMonitorado struct {
	ID           int64
	IDVendedor   int64
	URLProduto   string
	NomeProduto  string
	PrecoAtual   float64
	UltimaColeta time.Time
}

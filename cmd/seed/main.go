package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/busca-app/cacapreco-api/config"
	"github.com/busca-app/cacapreco-api/pkg/helpers"
)

var categorias = []struct {
	Nome      string
	Descricao string
	Subs      []string
}{
	{"Mercado", "Supermercados e mercearias", []string{"Alimentos", "Bebidas", "Limpeza", "Higiene"}},
	{"Padaria", "Padarias e confeitarias", []string{"Pães", "Doces", "Salgados"}},
	{"Hortifruti", "Frutas, legumes e verduras", []string{"Frutas", "Legumes", "Verduras"}},
	{"Açougue", "Carnes e derivados", []string{"Bovinos", "Aves", "Suínos", "Peixes"}},
	{"Farmácia", "Farmácias e drogarias", []string{"Medicamentos", "Cosméticos"}},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, cat := range categorias {
		var idCategoria int64
		err := db.QueryRow(`
			INSERT INTO categoria_loja (nome, descricao)
			VALUES ($1, $2)
			ON CONFLICT (nome) DO UPDATE SET descricao = EXCLUDED.descricao
			RETURNING id
		`, cat.Nome, cat.Descricao).Scan(&idCategoria)
		if err != nil {
			log.Fatalf("failed to seed category %s: %v", cat.Nome, err)
		}
		for _, sub := range cat.Subs {
			if _, err := db.Exec(`
				INSERT INTO subcategoria_produto (nome, id_categoria_loja)
				VALUES ($1, $2)
				ON CONFLICT (nome, id_categoria_loja) DO NOTHING
			`, sub, idCategoria); err != nil {
				log.Fatalf("failed to seed subcategory %s: %v", sub, err)
			}
		}
	}
	fmt.Printf("seeded %d categories\n", len(categorias))

	email := "admin@cacapreco.com.br"
	password := "admin123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO usuario (email, senha_hash, tipo_usuario, ativo, email_confirmado)
		VALUES ($1, $2, 'Admin', TRUE, TRUE)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%d email=%s password=%s\n", id, email, password)
}

package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	repo "github.com/busca-app/cacapreco-api/internal/domain/repository"
	"github.com/busca-app/cacapreco-api/pkg/helpers"
)

var ErrNotOwner = errors.New("offer does not belong to seller")

const (
	cacheKeyCategories    = "catalog:categories"
	cacheKeySubcategories = "catalog:subcategories"
	catalogCacheTTL       = 5 * time.Minute
)

// CatalogService serves the category and product surface. Categories are
// cached in Redis; the public product search goes through Elasticsearch when
// an index is configured and falls back to SQL otherwise.
type CatalogService struct {
	Repo    repo.CatalogRepository
	Redis   *redis.Client
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
}

func NewCatalogService(r repo.CatalogRepository, rdb *redis.Client, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Repo: r, Redis: rdb, ES: es, ESIndex: esIndex, Logger: logger}
}

func (s *CatalogService) Categories(ctx context.Context) ([]entity.CategoriaLoja, error) {
	if s.Redis != nil {
		var cached []entity.CategoriaLoja
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, cacheKeyCategories, &cached); err == nil && ok {
			return cached, nil
		}
	}
	cats, err := s.Repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, cacheKeyCategories, cats, catalogCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("cache categories failed")
		}
	}
	return cats, nil
}

func (s *CatalogService) Subcategories(ctx context.Context) ([]entity.SubcategoriaProduto, error) {
	if s.Redis != nil {
		var cached []entity.SubcategoriaProduto
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, cacheKeySubcategories, &cached); err == nil && ok {
			return cached, nil
		}
	}
	subs, err := s.Repo.Subcategories(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, cacheKeySubcategories, subs, catalogCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("cache subcategories failed")
		}
	}
	return subs, nil
}

// Search runs the public product search. ES errors degrade to the SQL path so
// a broken index never breaks the storefront.
func (s *CatalogService) Search(ctx context.Context, q string) ([]entity.OfertaListada, error) {
	if q != "" && s.ES != nil && s.ESIndex != "" {
		if out, err := s.searchES(ctx, q); err == nil {
			return out, nil
		} else if s.Logger != nil {
			s.Logger.WithError(err).Warn("es search failed, falling back to sql")
		}
	}
	return s.Repo.SearchOfferings(ctx, q)
}

func (s *CatalogService) searchES(ctx context.Context, q string) ([]entity.OfertaListada, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"NomeProduto^2", "Descricao", "NomeLoja"},
			},
		},
		"size": 50,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, errors.New("es search: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.OfertaListada `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.OfertaListada, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// CreateComplete inserts the product tree transactionally and indexes the new
// offerings into ES, best effort.
func (s *CatalogService) CreateComplete(ctx context.Context, idVendedor int64, p repo.NovoProdutoCompleto) (int64, error) {
	idProduto, err := s.Repo.CreateComplete(ctx, idVendedor, p)
	if err != nil {
		return 0, err
	}
	s.indexProduct(ctx, idProduto, p)
	return idProduto, nil
}

func (s *CatalogService) indexProduct(ctx context.Context, idProduto int64, p repo.NovoProdutoCompleto) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	for i, v := range p.Variacoes {
		doc := map[string]any{
			"ID_Produto":    idProduto,
			"NomeProduto":   p.Nome,
			"Descricao":     p.Descricao,
			"NomeVariacao":  v.Nome,
			"ValorVariacao": v.Valor,
			"Preco":         v.Preco,
		}
		b, _ := json.Marshal(doc)
		req := esapi.IndexRequest{
			Index:      s.ESIndex,
			DocumentID: strconv.FormatInt(idProduto, 10) + "-" + strconv.Itoa(i),
			Body:       strings.NewReader(string(b)),
			Refresh:    "false",
		}
		c, cancel := context.WithTimeout(ctx, 3*time.Second)
		res, err := req.Do(c, s.ES)
		cancel()
		if err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("produto", idProduto).Warn("es index failed")
			}
			return
		}
		_ = res.Body.Close()
	}
}

func (s *CatalogService) SellerOfferings(ctx context.Context, idVendedor int64, idCategoria *int64) ([]entity.OfertaListada, error) {
	return s.Repo.SellerOfferings(ctx, idVendedor, idCategoria)
}

// UpdateOffer verifies ownership before touching the product/offer pair.
func (s *CatalogService) UpdateOffer(ctx context.Context, idProduto, idVariacao, idVendedor int64, up repo.OfertaAtualizacao) error {
	owned, err := s.Repo.OfferOwned(ctx, idVariacao, idVendedor)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotOwner
	}
	return s.Repo.UpdateProductOffer(ctx, idProduto, idVariacao, idVendedor, up)
}

func (s *CatalogService) DeleteOffer(ctx context.Context, idVariacao, idVendedor int64) error {
	owned, err := s.Repo.OfferOwned(ctx, idVariacao, idVendedor)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotOwner
	}
	return s.Repo.DeleteOffer(ctx, idVariacao, idVendedor)
}

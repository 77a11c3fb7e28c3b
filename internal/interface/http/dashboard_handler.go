package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/pkg/response"
)

// DashboardHandler serves the seller price-analysis dashboard. The chart
// payloads are canned until the monitoring pipeline produces real series.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type chartDataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BorderColor     any       `json:"borderColor,omitempty"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type analysisResponse struct {
	LineChartData chartData `json:"lineChartData"`
	BarChartData  chartData `json:"barChartData"`
	PieChartData  chartData `json:"pieChartData"`
}

func (h *DashboardHandler) Analysis(ctx *gin.Context) {
	payload := analysisResponse{
		LineChartData: chartData{
			Labels: []string{"Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado", "Domingo"},
			Datasets: []chartDataset{
				{
					Label:           "Seu Preço Médio",
					Data:            []float64{25.50, 25.60, 25.45, 25.70, 25.65, 26.00, 25.90},
					BorderColor:     "#FF8383",
					BackgroundColor: "rgba(255, 131, 131, 0.5)",
					Tension:         0.3,
				},
				{
					Label:           "Média da Concorrência",
					Data:            []float64{24.80, 24.90, 25.00, 24.85, 24.95, 25.10, 25.05},
					BorderColor:     "#A19AD3",
					BackgroundColor: "rgba(161, 154, 211, 0.5)",
					Tension:         0.3,
				},
			},
		},
		BarChartData: chartData{
			Labels: []string{"Produto A", "Produto B", "Produto C", "Produto D", "Produto E"},
			Datasets: []chartDataset{
				{
					Label:           "Seu Estoque",
					Data:            []float64{50, 60, 70, 45, 80},
					BackgroundColor: "#A1D6CB",
				},
				{
					Label:           "Estoque Médio da Concorrência",
					Data:            []float64{45, 65, 68, 50, 75},
					BackgroundColor: "#FFC107",
				},
			},
		},
		PieChartData: chartData{
			Labels: []string{"Abaixo do Mercado", "No Mercado", "Acima do Mercado"},
			Datasets: []chartDataset{
				{
					Data: []float64{30, 50, 20},
					BackgroundColor: []string{
						"rgba(75, 192, 192, 0.6)",
						"rgba(255, 206, 86, 0.6)",
						"rgba(255, 99, 132, 0.6)",
					},
					BorderColor: []string{
						"rgba(75, 192, 192, 1)",
						"rgba(255, 206, 86, 1)",
						"rgba(255, 99, 132, 1)",
					},
					BorderWidth: 1,
				},
			},
		},
	}
	response.Success(ctx, http.StatusOK, payload, "")
}

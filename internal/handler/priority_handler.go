package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FullUproar/ravenloomai-sub001/internal/priority"
)

type PriorityHandler struct{}

func NewPriorityHandler() *PriorityHandler {
	return &PriorityHandler{}
}

// ScaleEntry представляет одну ступень шкалы приоритетов
type ScaleEntry struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Scale возвращает полную шкалу метка→балл для клиентов UI
func (h *PriorityHandler) Scale(c *gin.Context) {
	labels := []string{
		priority.LabelCritical,
		priority.LabelUrgent,
		priority.LabelHigh,
		priority.LabelMedium,
		priority.LabelLow,
	}

	scale := make([]ScaleEntry, len(labels))
	for i, label := range labels {
		scale[i] = ScaleEntry{Label: label, Score: priority.Encode(label)}
	}
	c.JSON(http.StatusOK, gin.H{"scale": scale})
}

package application

import (
	"fmt"
	"strings"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
)

const batchTitlePrefix = "【电信套餐用量监控】"

// Report accumulates fragments in processing order for one run.
type Report struct {
	fragments []domain.Fragment
}

func (r *Report) Add(fragment domain.Fragment) {
	r.fragments = append(r.fragments, fragment)
}

func (r *Report) Fragments() []domain.Fragment {
	return append([]domain.Fragment(nil), r.fragments...)
}

func (r *Report) Texts() []string {
	texts := make([]string, 0, len(r.fragments))
	for _, fragment := range r.fragments {
		texts = append(texts, fragment.Text)
	}
	return texts
}

// Partition splits texts into consecutive groups of at most size entries.
func Partition(texts []string, size int) [][]string {
	if size < 1 {
		size = 1
	}

	batches := make([][]string, 0, (len(texts)+size-1)/size)
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, texts[start:end])
	}

	return batches
}

// BatchTitle names batch index (1-based) out of total.
func BatchTitle(index, total int) string {
	return fmt.Sprintf("%s%d/%d", batchTitlePrefix, index, total)
}

func BatchBody(texts []string) string {
	return strings.Join(texts, "\n")
}

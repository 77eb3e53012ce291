package pipeline

import (
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/generator"
	"github.com/grachmannico95/incident-replay/pkg/format"
)

// BucketWidth is the width of one chart bucket.
const BucketWidth = 5 * time.Minute

type bucketAccumulator struct {
	volume     int
	authorized int
	status     domain.ProcessorStatus
}

// Bucketize groups txs into contiguous BucketWidth buckets aligned to the
// epoch. txs must be ascending by timestamp. Buckets are half-open, so a
// transaction sitting exactly on the closing boundary is not counted and a
// lone transaction on a boundary yields no buckets.
func Bucketize(txs []domain.Transaction) []domain.TimeBucket {
	if len(txs) == 0 {
		return []domain.TimeBucket{}
	}

	width := BucketWidth.Milliseconds()
	minTs := txs[0].Timestamp.UnixMilli()
	maxTs := txs[len(txs)-1].Timestamp.UnixMilli()

	start := floorDiv(minTs, width) * width
	end := ceilDiv(maxTs, width) * width
	count := int((end - start) / width)
	if count == 0 {
		return []domain.TimeBucket{}
	}

	acc := make([]map[domain.ProcessorID]*bucketAccumulator, count)
	for i := range acc {
		acc[i] = make(map[domain.ProcessorID]*bucketAccumulator, len(domain.ProcessorIDs))
	}

	for _, tx := range txs {
		ts := tx.Timestamp.UnixMilli()
		if ts >= end {
			continue
		}
		idx := int((ts - start) / width)
		a, ok := acc[idx][tx.ProcessorID]
		if !ok {
			a = &bucketAccumulator{}
			acc[idx][tx.ProcessorID] = a
		}
		a.volume++
		if tx.Authorized {
			a.authorized++
		}
		a.status = tx.ProcessorStatus
	}

	buckets := make([]domain.TimeBucket, 0, count)
	for i := 0; i < count; i++ {
		ts := time.UnixMilli(start + int64(i)*width).UTC()
		bucket := domain.TimeBucket{
			Timestamp:  ts,
			Label:      format.TimeLabel(ts),
			Processors: make(map[domain.ProcessorID]domain.ProcessorBucketData, len(domain.ProcessorIDs)),
		}

		totalAuthorized := 0
		for _, pid := range domain.ProcessorIDs {
			data := domain.ProcessorBucketData{
				BaselineAuthRate: generator.BaselineAuthRates[pid],
				Status:           domain.ProcessorStatusHealthy,
			}
			if a, ok := acc[i][pid]; ok {
				data.Volume = a.volume
				data.Authorized = a.authorized
				data.Declined = a.volume - a.authorized
				data.AuthRate = ratio(a.authorized, a.volume)
				data.Status = a.status
			}
			bucket.Processors[pid] = data
			bucket.TotalVolume += data.Volume
			totalAuthorized += data.Authorized
		}
		bucket.OverallAuthRate = ratio(totalAuthorized, bucket.TotalVolume)

		buckets = append(buckets, bucket)
	}

	return buckets
}

func ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

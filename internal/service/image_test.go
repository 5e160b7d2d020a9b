package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStoreEmbedsWithoutS3(t *testing.T) {
	svc := NewImageService(nil)

	ref, err := svc.Store(context.Background(), "avatar.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AQID", ref)
}

func TestAnalyticsSummaryTotals(t *testing.T) {
	summary := NewAnalyticsService().Summary()

	assert.Len(t, summary.Series, 7)
	assert.Equal(t, 1260, summary.TotalViews)
	assert.Equal(t, 529, summary.TotalClicks)
	assert.Equal(t, "Instagram", summary.TopLinks[0].Title)
}

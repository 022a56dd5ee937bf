package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPurchase(t *testing.T) {
	units := testutil.ToFloat64(ItemsPurchased.WithLabelValues("healthPotion"))
	coins := testutil.ToFloat64(CoinsSpent)

	RecordPurchase("healthPotion", 3, 150)

	assert.Equal(t, units+3, testutil.ToFloat64(ItemsPurchased.WithLabelValues("healthPotion")))
	assert.Equal(t, coins+150, testutil.ToFloat64(CoinsSpent))
}

func TestRecordDailyReset(t *testing.T) {
	frozen := testutil.ToFloat64(DailyResets.WithLabelValues("true"))
	broken := testutil.ToFloat64(StreaksBroken)

	RecordDailyReset(true, 0)
	RecordDailyReset(false, 2)

	assert.Equal(t, frozen+1, testutil.ToFloat64(DailyResets.WithLabelValues("true")))
	assert.Equal(t, broken+2, testutil.ToFloat64(StreaksBroken))
}

func TestRecordEventPublished_LabelsFailures(t *testing.T) {
	before := testutil.ToFloat64(EventsPublished.WithLabelValues("pet_evolved", "error"))
	RecordEventPublished("pet_evolved", errors.New("redis down"))
	assert.Equal(t, before+1, testutil.ToFloat64(EventsPublished.WithLabelValues("pet_evolved", "error")))
}

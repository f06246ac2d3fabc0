package goal

import (
	"testing"
	"time"

	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestGoal_Progress(t *testing.T) {
	t.Run("should compute quarter progress as low", func(t *testing.T) {
		g := Goal{TargetAmount: amount(300000), CurrentAmount: amount(75000)}

		assert.Equal(t, "25", g.Progress().String())
		assert.Equal(t, "progress-bar-low", g.ProgressClass())
		assert.True(t, amount(225000).Equal(g.Remaining()))
	})

	t.Run("should cap progress at 100", func(t *testing.T) {
		g := Goal{TargetAmount: amount(1000), CurrentAmount: amount(1500)}

		assert.Equal(t, "100", g.Progress().String())
		assert.Equal(t, "progress-bar-complete", g.ProgressClass())
		assert.True(t, g.Remaining().IsZero())
		assert.True(t, g.IsReached())
	})

	t.Run("should not divide by zero target", func(t *testing.T) {
		g := Goal{CurrentAmount: amount(10)}

		assert.True(t, g.Progress().IsZero())
		assert.False(t, g.IsReached())
	})
}

func TestGoal_DaysLeftAndContribution(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	target := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	g := Goal{TargetAmount: amount(90000), CurrentAmount: amount(30000), TargetDate: &target}

	days := g.DaysLeft(now)

	assert.Equal(t, 60, *days)
	assert.True(t, amount(30000).Equal(g.MonthlyContribution(now)))
	assert.Nil(t, Goal{}.DaysLeft(now))
	assert.True(t, Goal{TargetAmount: amount(10)}.MonthlyContribution(now).IsZero())
}

func TestGoal_Validate(t *testing.T) {
	valid := Goal{Name: "Trip", TargetAmount: amount(1000), Currency: money.USD, Status: Active, Priority: High}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.ErrorIs(t, noName.Validate(), ErrInvalidGoal)

	zeroTarget := valid
	zeroTarget.TargetAmount = decimal.Zero
	assert.ErrorIs(t, zeroTarget.Validate(), ErrInvalidGoal)

	badStatus := valid
	badStatus.Status = "archived"
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidGoal)
}

func TestProgressRequest_Validate(t *testing.T) {
	assert.NoError(t, ProgressRequest{Amount: amount(10), AccountId: "a1"}.Validate())
	assert.ErrorIs(t, ProgressRequest{Amount: amount(-1), AccountId: "a1"}.Validate(), ErrInvalidProgress)
	assert.ErrorIs(t, ProgressRequest{Amount: amount(10)}.Validate(), ErrInvalidProgress)
}

package strategy

import (
	"testing"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

func f(v float64) *float64 { return &v }

func TestClassify_Buy(t *testing.T) {
	// Oversold RSI while the price holds above the short MA.
	snap := model.IndicatorSnapshot{LatestPrice: 150, RSI14: f(25), MA50: f(140), MA200: f(160)}
	if got := Classify(snap, model.DefaultRules()); got != model.SignalBuy {
		t.Errorf("Classify() = %s, want %s", got, model.SignalBuy)
	}
}

func TestClassify_SellOverbought(t *testing.T) {
	snap := model.IndicatorSnapshot{LatestPrice: 100, RSI14: f(75), MA50: f(90), MA200: f(95)}
	if got := Classify(snap, model.DefaultRules()); got != model.SignalSell {
		t.Errorf("Classify() = %s, want %s", got, model.SignalSell)
	}
}

func TestClassify_SellBelowLongMA(t *testing.T) {
	// Neutral RSI; the price sitting under the long MA is enough to sell.
	snap := model.IndicatorSnapshot{LatestPrice: 50, RSI14: f(45), MA50: f(55), MA200: f(60)}
	if got := Classify(snap, model.DefaultRules()); got != model.SignalSell {
		t.Errorf("Classify() = %s, want %s", got, model.SignalSell)
	}
}

func TestClassify_Hold(t *testing.T) {
	snap := model.IndicatorSnapshot{LatestPrice: 50, RSI14: f(45), MA50: f(45), MA200: f(40)}
	if got := Classify(snap, model.DefaultRules()); got != model.SignalHold {
		t.Errorf("Classify() = %s, want %s", got, model.SignalHold)
	}
}

func TestClassify_BuyTakesPrecedenceOverSell(t *testing.T) {
	// Satisfies both the Buy rule and the price-below-long-MA Sell rule.
	snap := model.IndicatorSnapshot{LatestPrice: 110, RSI14: f(25), MA50: f(100), MA200: f(120)}
	if got := Classify(snap, model.DefaultRules()); got != model.SignalBuy {
		t.Errorf("Classify() = %s, want %s (rule 1 wins)", got, model.SignalBuy)
	}
}

func TestClassify_UndefinedFields(t *testing.T) {
	cases := []struct {
		name string
		snap model.IndicatorSnapshot
		want model.Signal
	}{
		{
			name: "all undefined resolves to hold",
			snap: model.IndicatorSnapshot{LatestPrice: 100},
			want: model.SignalHold,
		},
		{
			name: "oversold rsi without ma50 cannot buy",
			snap: model.IndicatorSnapshot{LatestPrice: 100, RSI14: f(25)},
			want: model.SignalHold,
		},
		{
			name: "undefined rsi still sells below long ma",
			snap: model.IndicatorSnapshot{LatestPrice: 80, MA200: f(120)},
			want: model.SignalSell,
		},
		{
			name: "overbought rsi sells without any ma",
			snap: model.IndicatorSnapshot{LatestPrice: 100, RSI14: f(75)},
			want: model.SignalSell,
		},
		{
			name: "oversold rsi below ma50 holds",
			snap: model.IndicatorSnapshot{LatestPrice: 90, RSI14: f(25), MA50: f(95)},
			want: model.SignalHold,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.snap, model.DefaultRules()); got != tc.want {
				t.Errorf("Classify() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClassify_TotalAndDeterministic(t *testing.T) {
	rules := model.DefaultRules()
	rsis := []*float64{nil, f(25), f(50), f(75)}
	ma50s := []*float64{nil, f(90), f(110)}
	ma200s := []*float64{nil, f(80), f(120)}
	for _, rsi := range rsis {
		for _, ma50 := range ma50s {
			for _, ma200 := range ma200s {
				snap := model.IndicatorSnapshot{LatestPrice: 100, RSI14: rsi, MA50: ma50, MA200: ma200}
				got := Classify(snap, rules)
				if got != model.SignalBuy && got != model.SignalSell && got != model.SignalHold {
					t.Fatalf("Classify() returned unknown signal %q", got)
				}
				if again := Classify(snap, rules); again != got {
					t.Errorf("Classify() not deterministic: %s then %s", got, again)
				}
			}
		}
	}
}

func TestClassify_CustomRules(t *testing.T) {
	rules := model.DefaultRules()
	rules.RSIOversold = 40

	snap := model.IndicatorSnapshot{LatestPrice: 150, RSI14: f(35), MA50: f(140)}
	if got := Classify(snap, rules); got != model.SignalBuy {
		t.Errorf("Classify() with widened oversold band = %s, want %s", got, model.SignalBuy)
	}
	if got := Classify(snap, model.DefaultRules()); got != model.SignalHold {
		t.Errorf("Classify() with default rules = %s, want %s", got, model.SignalHold)
	}
}

package folio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMarketData_LatestClose(t *testing.T) {
	m := newMarket()
	q, ok, err := m.LatestClose(context.Background(), "AAPL")
	if err != nil || !ok {
		t.Fatalf("LatestClose() = %v, %v, want a quote", ok, err)
	}
	if q.Day != D("2024-06-03") || q.Close != 150 {
		t.Errorf("LatestClose() = %+v, want 150 on 2024-06-03", q)
	}

	if _, ok, err := m.LatestClose(context.Background(), "FAKE9999"); ok || err != nil {
		t.Errorf("LatestClose(FAKE9999) = %v, %v, want no data and no error", ok, err)
	}
}

func TestMarketData_HistoryIsACopy(t *testing.T) {
	m := newMarket()
	h, err := m.History(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	h.Append(D("2024-06-03"), 0)
	if q, _, _ := m.LatestClose(context.Background(), "AAPL"); q.Close != 150 {
		t.Errorf("History() leaked the market data: latest close is now %v", q.Close)
	}

	h, err = m.History(context.Background(), "FAKE9999")
	if err != nil || h.Len() != 0 {
		t.Errorf("History(FAKE9999) = %d values, %v, want an empty history", h.Len(), err)
	}
}

func TestMarketData_Tickers(t *testing.T) {
	got := newMarket().Tickers()
	if len(got) != 2 || got[0] != "AAPL" || got[1] != "MSFT" {
		t.Errorf("Tickers() = %v, want [AAPL MSFT]", got)
	}
}

func TestEncodeDecodeMarketData(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "market")
	m := newMarket()
	m.Append("AAPL", D("2023-12-29"), 129.5)

	// A stale yearly file must disappear.
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(folder, "2019.jsonl")
	if err := os.WriteFile(stale, []byte(`{"on":"2019-01-02","AAPL":39}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := EncodeMarketData(folder, m); err != nil {
		t.Fatalf("EncodeMarketData() unexpected error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("EncodeMarketData() kept %s", stale)
	}
	content, err := os.ReadFile(filepath.Join(folder, "2023.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"on":"2023-12-29","AAPL":129.5}` + "\n"; string(content) != want {
		t.Errorf("2023.jsonl = %q, want %q", content, want)
	}

	back, err := DecodeMarketData(folder)
	if err != nil {
		t.Fatalf("DecodeMarketData() unexpected error: %v", err)
	}
	for _, ticker := range m.Tickers() {
		want, _ := m.History(context.Background(), ticker)
		got, _ := back.History(context.Background(), ticker)
		if got.Len() != want.Len() {
			t.Errorf("%s: decoded %d closes, want %d", ticker, got.Len(), want.Len())
		}
		for day, price := range want.Values() {
			if v, ok := got.Get(day); !ok || v != price {
				t.Errorf("%s on %v = %v, want %v", ticker, day, v, price)
			}
		}
	}
}

func TestDecodeMarketData(t *testing.T) {
	dir := t.TempDir()

	m, err := DecodeMarketData(filepath.Join(dir, "missing"))
	if err != nil || len(m.Tickers()) != 0 {
		t.Errorf("DecodeMarketData(missing) = %v, %v, want an empty market", m.Tickers(), err)
	}

	file := filepath.Join(dir, "prices.jsonl")
	content := "{\"on\":\"2024-01-02\",\"aapl\":130}\n\n{\"on\":\"2024-01-03\",\"AAPL\":131}\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	m, err = DecodeMarketData(file)
	if err != nil {
		t.Fatalf("DecodeMarketData() unexpected error: %v", err)
	}
	if q, ok, _ := m.LatestClose(context.Background(), "AAPL"); !ok || q.Close != 131 {
		t.Errorf("LatestClose() = %+v, %v, want 131 with normalized tickers", q, ok)
	}

	bad := []string{
		`not json`,
		`{"AAPL":130}`,
		`{"on":20240102,"AAPL":130}`,
		`{"on":"yesterday","AAPL":130}`,
		`{"on":"2024-01-02","AAPL":"130"}`,
	}
	for _, line := range bad {
		if err := os.WriteFile(file, []byte(line+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := DecodeMarketData(file); err == nil {
			t.Errorf("DecodeMarketData(%s) succeeded, want an error", line)
		}
	}
}

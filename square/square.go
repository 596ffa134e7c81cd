package square

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"kds_manager/config"

	"github.com/google/uuid"
)

// Client mirrors orders into the Square POS and pulls its catalog. The
// real client and the stub are chosen once at startup; call sites never
// branch on which one they hold.
type Client interface {
	CreateOrder(lines []OrderLine) (string, error)
	ListCatalog() ([]CatalogItem, error)
}

type OrderLine struct {
	Name       string
	Qty        int
	PriceCents int
}

type CatalogItem struct {
	SquareId   string
	Name       string
	Category   string
	PriceCents int
}

// NewClient picks the real API when a sandbox token is configured and a
// local stub otherwise.
func NewClient() Client {
	token := config.Config("SQUARE_SANDBOX_TOKEN")
	if token == "" {
		log.Println("SQUARE_SANDBOX_TOKEN not set, using stub Square client")
		return &Stub{}
	}
	baseURL := config.Config("SQUARE_URL")
	if baseURL == "" {
		baseURL = "https://connect.squareupsandbox.com"
	}
	return &api{
		token:      token,
		locationId: config.Config("SQUARE_SANDBOX_LOCATION"),
		baseURL:    baseURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

type api struct {
	token      string
	locationId string
	baseURL    string
	http       *http.Client
}

const apiVersion = "2025-04-16"

func (a *api) CreateOrder(lines []OrderLine) (string, error) {
	lineItems := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		lineItems = append(lineItems, map[string]any{
			"name":     line.Name,
			"quantity": fmt.Sprintf("%d", line.Qty),
			"base_price_money": map[string]any{
				"amount":   line.PriceCents,
				"currency": "USD",
			},
		})
	}
	body := map[string]any{
		"idempotency_key": uuid.NewString(),
		"order": map[string]any{
			"location_id": a.locationId,
			"line_items":  lineItems,
		},
	}

	var resp struct {
		Order struct {
			Id string `json:"id"`
		} `json:"order"`
	}
	if err := a.post("/v2/orders", body, &resp); err != nil {
		return "", err
	}
	if resp.Order.Id == "" {
		return "", fmt.Errorf("square returned no order id")
	}
	return resp.Order.Id, nil
}

func (a *api) ListCatalog() ([]CatalogItem, error) {
	var resp struct {
		Objects []struct {
			Id       string `json:"id"`
			ItemData struct {
				Name       string `json:"name"`
				CategoryId string `json:"category_id"`
				Variations []struct {
					ItemVariationData struct {
						PriceMoney struct {
							Amount int `json:"amount"`
						} `json:"price_money"`
					} `json:"item_variation_data"`
				} `json:"variations"`
			} `json:"item_data"`
		} `json:"objects"`
	}
	if err := a.get("/v2/catalog/list?types=ITEM", &resp); err != nil {
		return nil, err
	}

	items := make([]CatalogItem, 0, len(resp.Objects))
	for _, obj := range resp.Objects {
		if obj.ItemData.Name == "" || len(obj.ItemData.Variations) == 0 {
			continue
		}
		category := obj.ItemData.CategoryId
		if category == "" {
			category = "Other"
		}
		items = append(items, CatalogItem{
			SquareId:   obj.Id,
			Name:       obj.ItemData.Name,
			Category:   category,
			PriceCents: obj.ItemData.Variations[0].ItemVariationData.PriceMoney.Amount,
		})
	}
	return items, nil
}

func (a *api) post(path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, a.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *api) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *api) do(req *http.Request, out any) error {
	req.Header.Set("Square-Version", apiVersion)
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("square %s: %s", resp.Status, string(raw))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Stub stands in for Square when no token is configured.
type Stub struct{}

func (s *Stub) CreateOrder(lines []OrderLine) (string, error) {
	return fmt.Sprintf("MOCK_%d", time.Now().UnixNano()), nil
}

func (s *Stub) ListCatalog() ([]CatalogItem, error) {
	return nil, nil
}

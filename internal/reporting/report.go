package reporting

import (
	"time"

	"caja-maestra-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Todos los reportes son de solo lectura y se derivan de ventas ⋈ productos.
// Limitación conocida y deliberada: el join usa el costo y el precio
// ACTUALES del producto, no los vigentes al momento de cada venta. Cambiar
// un precio re-escribe la historia del reporte. Ver DESIGN.md.

// SaleRow: una venta con su valuación a precios actuales.
type SaleRow struct {
	Date         time.Time            `json:"-"`
	Product      string               `json:"product"`
	QuantitySold int                  `json:"quantity_sold"`
	QuantityLost int                  `json:"quantity_lost"`
	Method       models.PaymentMethod `json:"method"`
	Invested     float64              `json:"invested"` // cantidad * costo actual
	Sold         float64              `json:"sold"`     // cantidad * precio actual
	Profit       float64              `json:"profit"`
}

// SplitPolicy: porcentajes del reparto de ganancias. Son política de
// negocio configurada, nunca se calculan.
type SplitPolicy struct {
	SellerShare        float64
	OwnerShare         float64
	OwnerBonusFraction float64
}

type ProfitSharing struct {
	TotalSold       float64 `json:"total_sold"`
	TotalInvested   float64 `json:"total_invested"`
	GrossProfit     float64 `json:"gross_profit"`
	SellerPay       float64 `json:"seller_pay"`
	OwnersPool      float64 `json:"owners_pool"`
	OwnerBonus      float64 `json:"owner_bonus"`
	OwnersRemainder float64 `json:"owners_remainder"`
}

type ProductValuation struct {
	ProductID uint    `json:"product_id"`
	Product   string  `json:"product"`
	Stock     int     `json:"stock"`
	Cost      float64 `json:"cost"`
	Value     float64 `json:"value"` // stock * costo actual
}

type MethodTotal struct {
	Method models.PaymentMethod `json:"method"`
	Total  float64              `json:"total"`
}

type DailyTotal struct {
	Date  time.Time `json:"-"`
	Total float64   `json:"total"`
}

func salesJoin(db *gorm.DB, from time.Time) *gorm.DB {
	dbq := db.Table("sales").
		Joins("JOIN products ON products.id = sales.product_id")
	if !from.IsZero() {
		dbq = dbq.Where("sales.date >= ?", from)
	}
	return dbq
}

// SalesDetail lista las ventas valuadas desde `from` (cero = sin límite).
func SalesDetail(db *gorm.DB, from time.Time) ([]SaleRow, error) {
	rows := make([]SaleRow, 0)
	err := salesJoin(db, from).
		Select(`sales.date AS date,
			products.name AS product,
			sales.quantity_sold AS quantity_sold,
			sales.quantity_lost AS quantity_lost,
			sales.method AS method,
			sales.quantity_sold * products.cost AS invested,
			sales.quantity_sold * products.sale_price AS sold,
			sales.quantity_sold * (products.sale_price - products.cost) AS profit`).
		Order("sales.date asc, sales.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ComputeProfitSharing agrega las ventas de la ventana y aplica el reparto.
// El reparto se hace con aritmética decimal redondeada a dos decimales; el
// resto de los dueños sale por resta, así bono + resto re-suman exacto el
// pozo.
func ComputeProfitSharing(db *gorm.DB, from time.Time, policy SplitPolicy) (*ProfitSharing, error) {
	var totals struct {
		Sold     float64
		Invested float64
	}
	err := salesJoin(db, from).
		Select(`COALESCE(SUM(sales.quantity_sold * products.sale_price), 0) AS sold,
			COALESCE(SUM(sales.quantity_sold * products.cost), 0) AS invested`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	sold := decimal.NewFromFloat(totals.Sold).Round(2)
	invested := decimal.NewFromFloat(totals.Invested).Round(2)
	gross := sold.Sub(invested)

	seller := gross.Mul(decimal.NewFromFloat(policy.SellerShare)).Round(2)
	pool := gross.Mul(decimal.NewFromFloat(policy.OwnerShare)).Round(2)
	bonus := pool.Mul(decimal.NewFromFloat(policy.OwnerBonusFraction)).Round(2)
	remainder := pool.Sub(bonus)

	return &ProfitSharing{
		TotalSold:       sold.InexactFloat64(),
		TotalInvested:   invested.InexactFloat64(),
		GrossProfit:     gross.InexactFloat64(),
		SellerPay:       seller.InexactFloat64(),
		OwnersPool:      pool.InexactFloat64(),
		OwnerBonus:      bonus.InexactFloat64(),
		OwnersRemainder: remainder.InexactFloat64(),
	}, nil
}

// InvestmentByProduct valúa la mercadería en mano (stock * costo actual).
// Es distinto de TotalInvested, que valúa lo ya vendido.
func InvestmentByProduct(db *gorm.DB) ([]ProductValuation, error) {
	rows := make([]ProductValuation, 0)
	err := db.Table("products").
		Select(`id AS product_id, name AS product, stock AS stock, cost AS cost,
			stock * cost AS value`).
		Order("name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SalesByMethod particiona lo vendido por método de pago.
func SalesByMethod(db *gorm.DB, from time.Time) ([]MethodTotal, error) {
	rows := make([]MethodTotal, 0)
	err := salesJoin(db, from).
		Select(`sales.method AS method,
			COALESCE(SUM(sales.quantity_sold * products.sale_price), 0) AS total`).
		Group("sales.method").
		Order("sales.method asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DailySales: serie diaria de lo vendido, para el gráfico del tablero.
func DailySales(db *gorm.DB, from time.Time) ([]DailyTotal, error) {
	rows := make([]DailyTotal, 0)
	err := salesJoin(db, from).
		Select(`sales.date AS date,
			COALESCE(SUM(sales.quantity_sold * products.sale_price), 0) AS total`).
		Group("sales.date").
		Order("sales.date asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

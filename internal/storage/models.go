package storage

// PriceRow is one grade/standard-tier price record. A nil tier means the
// tier is not quoted, which is distinct from a zero price.
type PriceRow struct {
	ID    uint   `json:"-" gorm:"primaryKey;column:id"`
	Grade string `json:"grade" gorm:"column:grade;not null;index:idx_prices_grade;index:idx_prices_grade_std,priority:1"`
	Std   string `json:"std" gorm:"column:std;not null;index:idx_prices_grade_std,priority:2"`

	Price *float64 `json:"price" gorm:"column:price"`

	Bulk *float64 `json:"bulk" gorm:"column:bulk"`
	Kg10 *float64 `json:"kg10" gorm:"column:kg10"`
	Kg5  *float64 `json:"kg5" gorm:"column:kg5"`

	Carton1kg  *float64 `json:"carton_1kg" gorm:"column:carton_1kg"`
	Carton500g *float64 `json:"carton_500g" gorm:"column:carton_500g"`
	Carton250g *float64 `json:"carton_250g" gorm:"column:carton_250g"`
	Carton100g *float64 `json:"carton_100g" gorm:"column:carton_100g"`
}

// TableName pins the table name so every backend shares the same schema.
func (PriceRow) TableName() string { return "prices" }

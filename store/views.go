package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// variantView names a convenience SQL view over one row of a consolidated multi-variant
// table, filtered to a single Variant value, per §4.9/§9(c): the table is the storage
// optimization, the view is the per-sentence-type query surface a consumer actually wants.
type variantView struct {
	name    string
	table   string
	variant string
}

var variantViews = []variantView{
	{name: "pnori_view", table: "pnori_records", variant: "PNORI"},
	{name: "pnori1_view", table: "pnori_records", variant: "PNORI1"},
	{name: "pnori2_view", table: "pnori_records", variant: "PNORI2"},

	{name: "pnors_view", table: "pnors_records", variant: "PNORS"},
	{name: "pnors1_view", table: "pnors_records", variant: "PNORS1"},
	{name: "pnors2_view", table: "pnors_records", variant: "PNORS2"},
	{name: "pnors3_view", table: "pnors_records", variant: "PNORS3"},
	{name: "pnors4_view", table: "pnors_records", variant: "PNORS4"},

	{name: "pnorc_view", table: "pnorc_records", variant: "PNORC"},
	{name: "pnorc1_view", table: "pnorc_records", variant: "PNORC1"},
	{name: "pnorc2_view", table: "pnorc_records", variant: "PNORC2"},
	{name: "pnorc3_view", table: "pnorc_averaged_records", variant: "PNORC3"},
	{name: "pnorc4_view", table: "pnorc_averaged_records", variant: "PNORC4"},

	{name: "pnorh3_view", table: "pnorh_records", variant: "PNORH3"},
	{name: "pnorh4_view", table: "pnorh_records", variant: "PNORH4"},
}

// createViews (re)creates the per-variant views. Called once after AutoMigrate; views are
// dropped and recreated on every startup so a schema change never leaves a stale view
// pointing at renamed columns behind.
func createViews(db *gorm.DB) error {
	for _, v := range variantViews {
		if err := db.Exec("DROP VIEW IF EXISTS " + v.name).Error; err != nil {
			return err
		}
		// SQLite stores a view's body as literal SQL text, so the filter value must be
		// embedded at creation time rather than bound as a query parameter.
		escaped := strings.ReplaceAll(v.variant, "'", "''")
		stmt := fmt.Sprintf("CREATE VIEW %s AS SELECT * FROM %s WHERE variant = '%s'", v.name, v.table, escaped)
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

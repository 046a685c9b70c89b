package order

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"N° Commande", "Client", "Téléphone", "Wilaya", "Livraison",
	"Frais", "Produits", "Total", "Statut", "Date",
}

const utf8BOM = "\ufeff"

// ShopLocation is the shop's local time, used for the order date column.
// Algeria stays on UTC+1 all year.
var ShopLocation = time.FixedZone("CET", 60*60)

// ExportFilename names an export produced on the given day.
func ExportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("commandes_luxa_%s.%s", now.Format("2006-01-02"), ext)
}

// exportRow flattens an order into the export columns. regionNames maps
// wilaya ids to display names.
func exportRow(o *Order, regionNames map[int]string) []string {
	region := "-"
	if o.WilayaID != nil {
		if name, ok := regionNames[*o.WilayaID]; ok {
			region = name
		}
	}

	products := make([]string, len(o.Items))
	for i, li := range o.Items {
		products[i] = li.Describe()
	}

	return []string{
		o.OrderNumber,
		o.CustomerName,
		o.Phone,
		region,
		o.DeliveryMethod.Label(),
		fmt.Sprintf("%d DA", o.ShippingCost),
		strings.Join(products, "; "),
		fmt.Sprintf("%d DA", o.TotalAmount),
		o.Status.Label(),
		o.CreatedAt.In(ShopLocation).Format("02/01/2006"),
	}
}

// WriteCSV writes orders as a spreadsheet-friendly CSV with a UTF-8 BOM.
func WriteCSV(w io.Writer, orders []*Order, regionNames map[int]string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for _, o := range orders {
		if err := cw.Write(exportRow(o, regionNames)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same columns as WriteCSV to a single-sheet workbook.
func WriteXLSX(w io.Writer, orders []*Order, regionNames map[int]string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Commandes")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}
	for _, o := range orders {
		row := sheet.AddRow()
		for _, v := range exportRow(o, regionNames) {
			row.AddCell().SetValue(v)
		}
	}
	return file.Write(w)
}

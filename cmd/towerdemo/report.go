package main

import (
	"fmt"

	pongo2 "github.com/flosch/pongo2/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/primetower"
	"github.com/gogpu/primetower/plan"
)

const reportTemplate = `job {{ job }}
tower at ({{ center_x }}, {{ center_y }}) radius {{ radius }} um, {{ base_layers }} base layers
{% for l in layers %}layer {{ l.Layer }}: {{ l.Polygons }} polygons, {{ l.Travels }} travels, {{ l.Length }} um printed, extruders {{ l.Extruders }}
{% endfor %}total printed: {{ total }} um
`

type layerRow struct {
	Layer     int
	Polygons  int
	Travels   int
	Length    string
	Extruders string
}

func renderReport(jobID string, tower *primetower.Tower, recordings []*plan.Recording) (string, error) {
	tpl, err := pongo2.NewSet("report", pongo2.DefaultLoader).FromString(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("report template: %w", err)
	}

	p := message.NewPrinter(language.English)
	var (
		rows  []layerRow
		total float64
	)
	for _, r := range recordings {
		st := r.Stats()
		total += st.PrintedLength
		rows = append(rows, layerRow{
			Layer:     int(r.Layer()),
			Polygons:  st.Polygons,
			Travels:   st.Travels,
			Length:    p.Sprintf("%.0f", st.PrintedLength),
			Extruders: fmt.Sprint(st.Extruders),
		})
	}

	return tpl.Execute(pongo2.Context{
		"job":         jobID,
		"center_x":    p.Sprintf("%d", tower.Center.X),
		"center_y":    p.Sprintf("%d", tower.Center.Y),
		"radius":      p.Sprintf("%d", tower.Radius),
		"base_layers": tower.BaseOccupied.Len(),
		"layers":      rows,
		"total":       p.Sprintf("%.0f", total),
	})
}

// Command gen writes the synthetic components and systems the stress test
// runs. It is invoked through go:generate from the ecs-stress package.
package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"text/template"

	"golang.org/x/tools/imports"
)

type systemInfo struct {
	Index    int
	Category string
	Priority int
	Read     int
	Write    int
}

type templateData struct {
	Package    string
	Components []int
	Systems    []systemInfo
}

// categories systems are spread across, in order.
var categories = []string{
	"CategoryInput",
	"CategoryStateTransition",
	"CategoryMovement",
	"CategoryPhysics",
	"CategoryCollision",
	"CategoryEffect",
	"CategoryRender",
}

var fileTemplate = template.Must(template.New("generated").Parse(`// Code generated by ecs-stress/gen. DO NOT EDIT.

package {{.Package}}

import (
	"math/rand"

	"github.com/plus3/kiln/ecs"
)

const (
	componentCount = {{len .Components}}
	systemCount    = {{len .Systems}}
)
{{range .Components}}
type Component{{.}} struct {
	Value float64
	Ticks int
}
{{end}}
func RegisterAllGeneratedComponents(w *ecs.World) {
{{- range .Components}}
	ecs.Register[Component{{.}}](w)
{{- end}}
}

var spawners = [componentCount]func(w *ecs.World, id ecs.EntityId, rng *rand.Rand){
{{- range .Components}}
	func(w *ecs.World, id ecs.EntityId, rng *rand.Rand) {
		ecs.Attach(w, id, Component{{.}}{Value: rng.Float64()})
	},
{{- end}}
}
{{range .Systems}}
type System{{.Index}} struct{ ecs.SystemBase }

func (s *System{{.Index}}) UpdateEntity(frame *ecs.UpdateFrame, entity *ecs.Entity) {
	in := ecs.Component[Component{{.Read}}](frame.World, entity.Id, 0)
	if in == nil {
		return
	}
	out := ecs.Component[Component{{.Write}}](frame.World, entity.Id, 0)
	if out == nil {
		return
	}
	out.Value += in.Value * frame.DeltaTime
	out.Ticks++
}
{{end}}
var systemNames = [systemCount]string{
{{- range .Systems}}
	"System{{.Index}}",
{{- end}}
}

func RegisterAllGeneratedSystems(w *ecs.World) {
{{- range .Systems}}
	w.Systems.Register(&System{{.Index}}{ecs.NewSystemBase(ecs.{{.Category}}, {{.Priority}})})
{{- end}}
}
`))

func main() {
	componentCount := flag.Int("components", 16, "Number of component types to generate.")
	systemCount := flag.Int("systems", 8, "Number of systems to generate.")
	out := flag.String("out", "generated.go", "Output file.")
	flag.Parse()

	if *componentCount < 2 || *systemCount < 1 {
		log.Fatal("gen: need at least 2 components and 1 system")
	}

	data := templateData{Package: os.Getenv("GOPACKAGE")}
	if data.Package == "" {
		data.Package = "main"
	}
	for i := range *componentCount {
		data.Components = append(data.Components, i)
	}
	for i := range *systemCount {
		data.Systems = append(data.Systems, systemInfo{
			Index:    i,
			Category: categories[i%len(categories)],
			Priority: i / len(categories),
			Read:     i % *componentCount,
			Write:    (i + 1) % *componentCount,
		})
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		log.Fatalf("gen: execute template: %v", err)
	}

	src, err := imports.Process(*out, buf.Bytes(), nil)
	if err != nil {
		log.Fatalf("gen: format %s: %v\n%s", *out, err, buf.Bytes())
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Fatalf("gen: %v", err)
	}
	log.Printf("gen: wrote %s (%d components, %d systems)", *out, *componentCount, *systemCount)
}

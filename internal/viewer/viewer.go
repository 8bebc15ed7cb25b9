// Package viewer implements the interactive schematic viewer window.
package viewer

import (
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"

	"github.com/willhack/kicanvas/pkg/kicad/renderer"
	"github.com/willhack/kicanvas/pkg/kicad/schematic"
	schrenderer "github.com/willhack/kicanvas/pkg/kicad/schematic/renderer"
)

// Options configures the viewer window
type Options struct {
	FilePath  string // Schematic to open at startup, may be empty
	ThemePath string // Optional YAML color theme
	Dark      bool   // Start with the dark built-in theme
}

// Run opens the viewer window and blocks until it is closed. It must
// be called from the main goroutine because the platform event loop
// takes over the thread.
func Run(opts Options) {
	go func() {
		w := new(app.Window)
		w.Option(app.Title("kicanvas"))
		w.Option(app.Size(unit.Dp(1200), unit.Dp(800)))

		if err := loop(w, opts); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

type viewerApp struct {
	window   *app.Window
	theme    *material.Theme
	explorer *explorer.Explorer

	schematic  *schematic.Schematic
	camera     *renderer.Camera
	colorTheme schrenderer.Theme
	colors     *schrenderer.SchematicColors
	customized bool // colors came from a theme file, toggling is disabled

	openFileBtn widget.Clickable
	themeBtn    widget.Clickable
	fitBtn      widget.Clickable

	lastPointerPos f32.Point
	isDragging     bool

	filepath string
}

func loop(w *app.Window, opts Options) error {
	v := &viewerApp{
		window:     w,
		theme:      material.NewTheme(),
		explorer:   explorer.NewExplorer(w),
		camera:     renderer.NewCamera(1200, 800),
		colorTheme: schrenderer.ThemeLight,
	}
	v.theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	if opts.Dark {
		v.colorTheme = schrenderer.ThemeDark
	}
	v.colors = schrenderer.GetSchematicColors(v.colorTheme)

	if opts.ThemePath != "" {
		colors, err := schrenderer.LoadThemeFile(opts.ThemePath)
		if err != nil {
			return fmt.Errorf("failed to load theme: %w", err)
		}
		v.colors = colors
		v.customized = true
	}

	if opts.FilePath != "" {
		v.loadSchematic(opts.FilePath)
	}

	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}

			v.camera.UpdateScreenSize(e.Size.X, e.Size.Y)
			v.handleInput(gtx)
			v.layout(gtx)
			e.Frame(&ops)
		}
	}
}

func (v *viewerApp) handleInput(gtx layout.Context) {
	if v.openFileBtn.Clicked(gtx) {
		v.openFilePicker()
	}
	if v.themeBtn.Clicked(gtx) {
		v.toggleTheme()
	}
	if v.fitBtn.Clicked(gtx) {
		v.fitToView()
	}

	v.handleKey(gtx, key.Filter{Name: "O", Required: key.ModShortcut}, v.openFilePicker)
	v.handleKey(gtx, key.Filter{Name: "T", Required: key.ModShortcut}, v.toggleTheme)
	v.handleKey(gtx, key.Filter{Name: "F"}, v.fitToView)
	v.handleKey(gtx, key.Filter{Name: "M"}, v.mirrorView)
	v.handleKey(gtx, key.Filter{Name: "R"}, v.rotateView)
	v.handleKey(gtx, key.Filter{Name: "Q"}, func() { os.Exit(0) })
	v.handleKey(gtx, key.Filter{Name: key.NameEscape}, func() { os.Exit(0) })

	for {
		ev, ok := gtx.Event(
			pointer.Filter{
				Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
			},
		)
		if !ok {
			break
		}

		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				v.isDragging = true
				v.lastPointerPos = pe.Position
			}

		case pointer.Drag:
			if v.isDragging && pe.Buttons == pointer.ButtonPrimary {
				deltaX := float64(pe.Position.X - v.lastPointerPos.X)
				deltaY := float64(pe.Position.Y - v.lastPointerPos.Y)
				v.camera.Pan(deltaX, deltaY)
				v.lastPointerPos = pe.Position
				v.window.Invalidate()
			}

		case pointer.Release:
			v.isDragging = false

		case pointer.Scroll:
			zoomFactor := 1.0 + float64(pe.Scroll.Y)*0.1
			v.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), zoomFactor)
			v.window.Invalidate()
		}
	}
}

func (v *viewerApp) handleKey(gtx layout.Context, filter key.Filter, action func()) {
	for {
		ev, ok := gtx.Event(filter)
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			action()
		}
	}
}

func (v *viewerApp) openFilePicker() {
	go func() {
		// Empty extension list: some platforms mishandle filters
		file, err := v.explorer.ChooseFile("")
		if err != nil {
			if err != explorer.ErrUserDecline {
				log.Printf("File picker error: %v", err)
			}
			return
		}
		defer file.Close()

		if f, ok := file.(*os.File); ok {
			v.loadSchematic(f.Name())
			v.window.Invalidate()
		}
	}()
}

func (v *viewerApp) loadSchematic(filepath string) {
	sch, err := schematic.ParseFile(filepath)
	if err != nil {
		log.Printf("Error loading schematic: %v", err)
		return
	}

	v.schematic = sch
	v.filepath = filepath
	v.window.Option(app.Title("kicanvas - " + filepath))
	v.fitToView()

	log.Printf("Loaded %s: version %d, %d symbols, %d wires",
		filepath, sch.Version, len(sch.Symbols), len(sch.Wires))
}

func (v *viewerApp) toggleTheme() {
	if v.customized {
		log.Println("Theme toggling disabled while a theme file is active")
		return
	}
	if v.colorTheme == schrenderer.ThemeLight {
		v.colorTheme = schrenderer.ThemeDark
	} else {
		v.colorTheme = schrenderer.ThemeLight
	}
	v.colors = schrenderer.GetSchematicColors(v.colorTheme)
	v.window.Invalidate()
}

func (v *viewerApp) mirrorView() {
	v.camera.Mirror()
	v.window.Invalidate()
}

func (v *viewerApp) rotateView() {
	v.camera.Rotate(90)
	v.window.Invalidate()
}

func (v *viewerApp) fitToView() {
	if v.schematic == nil {
		return
	}

	bbox := v.schematic.GetBoundingBox()
	if bbox.IsEmpty() {
		log.Println("Schematic has no content to fit")
		return
	}

	v.camera.Fit(bbox)
	v.window.Invalidate()
}

func (v *viewerApp) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, v.colors.Background)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(v.layoutToolbar),
		layout.Flexed(1, v.layoutCanvas),
	)
}

func (v *viewerApp) layoutToolbar(gtx layout.Context) layout.Dimensions {
	inset := layout.Inset{Top: 8, Bottom: 8, Left: 8, Right: 8}

	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					layout.Rigid(material.Button(v.theme, &v.openFileBtn, "Open (Ctrl+O)").Layout),
					layout.Rigid(layout.Spacer{Width: 8}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						btn := material.Button(v.theme, &v.themeBtn, "Theme: "+v.colorTheme.String()+" (Ctrl+T)")
						return btn.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: 8}.Layout),
					layout.Rigid(material.Button(v.theme, &v.fitBtn, "Fit (F)").Layout),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if v.schematic == nil {
					return material.Body1(v.theme, "No schematic loaded").Layout(gtx)
				}
				info := fmt.Sprintf("Symbols: %d | Wires: %d | Zoom: %.1fx",
					len(v.schematic.Symbols),
					len(v.schematic.Wires),
					v.camera.Zoom/10.0)
				return material.Body1(v.theme, info).Layout(gtx)
			}),
		)
	})
}

func (v *viewerApp) layoutCanvas(gtx layout.Context) layout.Dimensions {
	if v.schematic == nil {
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(material.H4(v.theme, "kicanvas").Layout),
				layout.Rigid(layout.Spacer{Height: 16}.Layout),
				layout.Rigid(material.Body1(v.theme, "Click 'Open' or press Ctrl+O to select a schematic").Layout),
				layout.Rigid(layout.Spacer{Height: 8}.Layout),
				layout.Rigid(material.Body2(v.theme, "Or launch with: kicanvas view <file.kicad_sch>").Layout),
				layout.Rigid(layout.Spacer{Height: 16}.Layout),
				layout.Rigid(material.Body2(v.theme, "Controls: drag to pan | scroll to zoom | F fit | R rotate | M mirror | Ctrl+T theme | Q quit").Layout),
			)
		})
	}

	schrenderer.RenderSchematic(gtx, v.camera, v.schematic, v.colors)
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

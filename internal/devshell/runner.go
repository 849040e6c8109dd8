package devshell

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/framegrace/texelslider/texel"
)

// Builder constructs a texel.App, optionally using CLI args.
type Builder func(args []string) (texel.App, error)

// Interrupter is implemented by apps that must abandon in-flight pointer
// gestures when the terminal loses focus.
type Interrupter interface {
	Interrupt()
}

var (
	regMu    sync.RWMutex
	registry = map[string]Builder{}
)

// Register adds a named builder. Registering a name twice replaces it.
func Register(name string, b Builder) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = b
}

// Names lists the registered builders in sorted order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

var logger = zap.NewNop()

// SetLogger sets the logger used by Run. Passing nil disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Named("devshell")
}

// Run executes the provided builder inside a local tcell screen.
func Run(builder Builder, args []string) error {
	app, err := builder(args)
	if err != nil {
		return err
	}

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()
	screen.EnableFocus()
	defer screen.DisableFocus()

	width, height := screen.Size()
	app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	app.SetRefreshNotifier(refreshCh)
	logger.Info("app started", zap.String("title", app.GetTitle()), zap.Int("cols", width), zap.Int("rows", height))

	draw := func() {
		buffer := app.Render()
		screen.Clear()
		for y := 0; y < len(buffer); y++ {
			row := buffer[y]
			for x := 0; x < len(row); x++ {
				cell := row[x]
				screen.SetContent(x, y, cell.Ch, nil, cell.Style)
			}
		}
		screen.Show()
	}

	draw()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run()
	}()
	defer app.Stop()

	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			select {
			case <-refreshCh:
				_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			app.Resize(w, h)
			screen.Sync()
			draw()
		case *tcell.EventFocus:
			if !tev.Focused {
				if in, ok := app.(Interrupter); ok {
					logger.Debug("focus lost, interrupting gestures")
					in.Interrupt()
					draw()
				}
			}
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				logger.Info("quit requested")
				return nil
			}
			app.HandleKey(tev)
			draw()
		case *tcell.EventMouse:
			if mh, ok := app.(texel.MouseHandler); ok {
				mh.HandleMouse(tev)
				draw()
			}
		}
	}
}

// RunApp finds a registered builder by name and runs it.
func RunApp(name string, args []string) error {
	regMu.RLock()
	buildApp, ok := registry[name]
	regMu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown app %q", name)
	}
	return Run(buildApp, args)
}

// Package web provides a display driver that streams frames to
// browsers over a websocket. Frames are sent as RGBA, as patches
// of the pixels that changed, or as references to frames the
// client has already been sent. Every connected client may press
// buttons.
package web

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
)

//go:embed index.html
var index []byte

func init() {
	driver := &webDriver{}
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &driver.addr,
			Type:        "string",
			Description: "Address to serve the web player on",
		},
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// webDriver serves the stream. A single goroutine, running in
// Start, owns the stream and the set of clients.
type webDriver struct {
	addr string
	emu  display.Emulator

	server            *http.Server
	pressed, released chan<- joypad.Button

	register, unregister chan *client
	control              chan [2]uint8
	done                 chan struct{}
}

func (w *webDriver) Initialize(emu display.Emulator) {
	w.emu = emu
}

// Start starts the display driver.
func (w *webDriver) Start(frames <-chan []byte, evts <-chan event.Event, pressed, released chan<- joypad.Button) error {
	w.pressed, w.released = pressed, released
	w.register = make(chan *client)
	w.unregister = make(chan *client)
	w.control = make(chan [2]uint8)
	w.done = make(chan struct{})
	defer close(w.done)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(wr http.ResponseWriter, r *http.Request) {
		wr.Header().Set("Content-Type", "text/html; charset=utf-8")
		wr.Write(index)
	})
	mux.HandleFunc("/ws", w.serveWS)

	w.server = &http.Server{Addr: w.addr, Handler: mux}
	errs := make(chan error, 1)
	go func() {
		errs <- w.server.ListenAndServe()
	}()
	defer w.server.Close()

	return w.run(newStream(), frames, evts, errs)
}

// Stop stops the display driver.
func (w *webDriver) Stop() error {
	if w.server == nil {
		return nil
	}
	return w.server.Close()
}

// serveWS upgrades a request to a websocket, and registers the
// client.
func (w *webDriver) serveWS(wr http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(wr, r, nil)
	if err != nil {
		return // the upgrader has replied with the error
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, 256),
		driver: w,
	}
	select {
	case w.register <- c:
	case <-w.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// leave unregisters c.
func (w *webDriver) leave(c *client) {
	select {
	case w.unregister <- c:
	case <-w.done:
	}
}

// setControl changes a stream setting.
func (w *webDriver) setControl(setting, value uint8) {
	select {
	case w.control <- [2]uint8{setting, value}:
	case <-w.done:
	}
}

// input forwards a button press or release.
func (w *webDriver) input(b joypad.Button, pressed bool) {
	ch := w.released
	if pressed {
		ch = w.pressed
	}
	select {
	case ch <- b:
	case <-w.done:
	}
}

// run services the stream until the emulator quits or the server
// fails.
func (w *webDriver) run(s *stream, frames <-chan []byte, evts <-chan event.Event, errs <-chan error) error {
	clients := make(map[*client]bool)
	var currentID uint8
	var title []byte

	broadcast := func(msg []byte) {
		for c := range clients {
			select {
			case c.send <- msg:
			default:
				close(c.send)
				delete(clients, c)
			}
		}
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case err := <-errs:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("web: %w", err)
		case f := <-frames:
			msgs, err := s.encode(f)
			if err != nil {
				return fmt.Errorf("web: encoding frame: %w", err)
			}
			for _, msg := range msgs {
				broadcast(msg)
			}
		case e := <-evts:
			switch e.Type {
			case event.Title:
				title = append([]byte{Title}, e.Data.(string)...)
				broadcast(title)
			case event.Quit:
				return nil
			}
		case c := <-w.register:
			currentID++
			c.id = currentID
			clients[c] = true

			msgs, err := s.sync()
			if err != nil {
				return fmt.Errorf("web: syncing client: %w", err)
			}
			if title != nil {
				msgs = append(msgs, title)
			}
			for _, msg := range msgs {
				c.send <- msg
			}
		case c := <-w.unregister:
			if clients[c] {
				delete(clients, c)
				close(c.send)
			}
		case ctl := <-w.control:
			switch ctl[0] {
			case Compression:
				s.compression = ctl[1] == 1
				s.reset()
			case CompressionLevel:
				s.compressionLevel = int(min(ctl[1], 11))
				s.reset()
			case FramePatching:
				s.framePatching = ctl[1] == 1
			case FrameSkipping:
				s.frameSkipping = ctl[1] == 1
			}
			broadcast([]byte{ClientInfo, s.info()})
		case <-ticker.C:
			info := []byte{ServerInfo}
			for c := range clients {
				info = append(info, c.id)
				info = binary.LittleEndian.AppendUint16(info, uint16(c.latency.Load()))
			}
			broadcast(info)
		}
	}
}

package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	apperrors "github.com/atelierfolio/atelier/internal/platform/errors"
	"github.com/atelierfolio/atelier/internal/platform/errors/i18n"
	"github.com/atelierfolio/atelier/internal/scene/animate"
	"github.com/atelierfolio/atelier/internal/scene/mood"
	"github.com/atelierfolio/atelier/internal/scene/navigation"
	"github.com/atelierfolio/atelier/internal/scene/room"
)

const (
	maxFramePayloadBytes   = 16 * 1024
	maxFramesPerSecond     = 40
	maxDecodeErrorsPerConn = 3

	// settleEpsilon is how close the mood must be to its target before the
	// stream goes quiet.
	settleEpsilon = 1e-3

	frameTypeSelect  = "nav.select"
	frameTypeScroll  = "nav.scroll"
	frameTypePointer = "nav.pointer"
	frameTypeEnter   = "nav.enter"
	frameTypeClose   = "nav.close"
	frameTypeEscape  = "nav.escape"
	frameTypeHome    = "nav.home"
	frameTypeSource  = "scene.source"

	frameTypeMood  = "scene.mood"
	frameTypeAck   = "scene.ack"
	frameTypeError = "scene.error"
)

type wsFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type wsErrorEnvelope struct {
	Error wsError `json:"error"`
}

type wsError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

type selectPayload struct {
	Room string `json:"room"`
}

type scrollPayload struct {
	Progress float64 `json:"progress"`
}

type pointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type sourcePayload struct {
	Source string `json:"source"`
}

type ackEnvelope struct {
	Result ackResult `json:"result"`
}

type ackResult struct {
	Status   string `json:"status"`
	Revision uint64 `json:"revision"`
}

type generativeEnvelope struct {
	animate.GenerativeParams
	Evolution float64 `json:"evolution"`
	Tint      string  `json:"tint"`
}

type moodEnvelope struct {
	Mode              navigation.Mode    `json:"mode"`
	ActiveRoom        room.ID            `json:"active_room"`
	Visited           []room.ID          `json:"visited"`
	ScrollProgress    float64            `json:"scroll_progress"`
	Source            mood.Source        `json:"source"`
	Color             string             `json:"color"`
	LightIntensity    float64            `json:"light_intensity"`
	ParticleIntensity float64            `json:"particle_intensity"`
	SoundFreq         float64            `json:"sound_freq"`
	CameraTarget      [3]float64         `json:"camera_target"`
	Generative        generativeEnvelope `json:"generative"`
	Revision          uint64             `json:"revision"`
}

type wsPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newWSPeer(encoder *json.Encoder) *wsPeer {
	return &wsPeer{encoder: encoder}
}

func (p *wsPeer) writeFrame(frame wsFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(frame)
}

// sceneSession is the per-connection scene: its own navigation state, mood
// driver and generative parameters, never shared between connections.
type sceneSession struct {
	peer       *wsPeer
	nav        *navigation.State
	driver     *mood.Driver
	generative *animate.Generative
}

func sceneHandler(tick time.Duration) http.Handler {
	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		handleSceneConn(conn, tick)
	})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wsHandler.ServeHTTP(w, r)
	})
}

func handleSceneConn(conn *websocket.Conn, tick time.Duration) {
	defer func() {
		_ = conn.Close()
	}()

	decoder := json.NewDecoder(conn)
	session := &sceneSession{
		peer:       newWSPeer(json.NewEncoder(conn)),
		nav:        navigation.New(),
		driver:     mood.NewDriver(),
		generative: animate.NewGenerative(time.Now().UnixNano()),
	}

	done := make(chan struct{})
	var streamWG sync.WaitGroup
	streamWG.Add(1)
	go func() {
		defer streamWG.Done()
		streamMood(session, tick, done)
	}()
	defer func() {
		close(done)
		streamWG.Wait()
	}()

	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var frame wsFrame
		if err := decoder.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			decodeErrors++
			_ = writeWSError(session.peer, "", apperrors.CodeFrameInvalid, nil)
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if len(frame.Payload) > maxFramePayloadBytes {
			_ = writeWSError(session.peer, frame.RequestID, apperrors.CodeFrameInvalid, nil)
			continue
		}

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			_ = writeWSError(session.peer, frame.RequestID, apperrors.CodeFrameRateLimit, nil)
			return
		}

		handleSceneFrame(session, frame)
	}
}

func handleSceneFrame(session *sceneSession, frame wsFrame) {
	switch frame.Type {
	case frameTypeSelect:
		var payload selectPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			_ = writeWSError(session.peer, frame.RequestID, apperrors.CodeFrameInvalid, nil)
			return
		}
		id, ok := room.Resolve(payload.Room)
		if !ok {
			_ = writeWSError(session.peer, frame.RequestID, apperrors.CodeRoomUnknown, map[string]string{"Room": payload.Room})
			return
		}
		session.nav.SelectRoom(id)
	case frameTypeScroll:
		var payload scrollPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			_ = writeWSError(session.peer, frame.RequestID, apperrors.CodeFrameInvalid, nil)
			return
		}
		session.nav.SetScrollProgress(payload.Progress)
	case frameTypePointer:
		var payload pointerPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			_ = writeWSError(session.peer, frame.RequestID, apperrors.CodeFrameInvalid, nil)
			return
		}
		// Generative first: a mood frame carrying the new revision must
		// already reflect the sample.
		session.generative.AddPointer(navigation.Pointer{X: payload.X, Y: payload.Y})
		session.nav.SetPointer(payload.X, payload.Y)
	case frameTypeEnter:
		session.nav.Enter()
	case frameTypeClose:
		session.nav.Close()
	case frameTypeEscape:
		session.nav.Escape()
	case frameTypeHome:
		session.nav.Home()
	case frameTypeSource:
		var payload sourcePayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			_ = writeWSError(session.peer, frame.RequestID, apperrors.CodeFrameInvalid, nil)
			return
		}
		source, ok := mood.ParseSource(strings.TrimSpace(payload.Source))
		if !ok {
			_ = writeWSError(session.peer, frame.RequestID, apperrors.CodeMoodSourceBad, nil)
			return
		}
		session.driver.SetSource(source)
	default:
		_ = writeWSError(session.peer, frame.RequestID, apperrors.CodeFrameInvalid, map[string]string{"Type": frame.Type})
		return
	}
	_ = session.peer.writeFrame(wsFrame{
		Type:      frameTypeAck,
		RequestID: frame.RequestID,
		Payload: mustJSON(ackEnvelope{Result: ackResult{
			Status:   "ok",
			Revision: session.nav.Snapshot().Revision,
		}}),
	})
}

// streamMood ticks the driver and sends a mood frame whenever the scene is
// still easing or the navigation state changed since the last frame.
func streamMood(session *sceneSession, tick time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var lastRevision uint64
	var lastSource mood.Source
	sent := false
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}
		snap := session.nav.Snapshot()
		source := session.driver.Source()
		params := session.driver.Tick(snap)
		session.generative.Evolve()
		changed := !sent || snap.Revision != lastRevision || source != lastSource
		if !changed && session.driver.Settled(snap, settleEpsilon) {
			continue
		}
		if err := session.peer.writeFrame(wsFrame{Type: frameTypeMood, Payload: mustJSON(moodFrame(snap, source, params, session.generative))}); err != nil {
			return
		}
		sent = true
		lastRevision = snap.Revision
		lastSource = source
	}
}

func moodFrame(snap navigation.Snapshot, source mood.Source, params mood.Params, generative *animate.Generative) moodEnvelope {
	hue, _, _ := params.Color.Clamped().Hsl()
	return moodEnvelope{
		Mode:              snap.Mode,
		ActiveRoom:        snap.ActiveRoom,
		Visited:           snap.Visited,
		ScrollProgress:    snap.ScrollProgress,
		Source:            source,
		Color:             params.Color.Clamped().Hex(),
		LightIntensity:    params.LightIntensity,
		ParticleIntensity: params.ParticleIntensity,
		SoundFreq:         params.SoundFreq,
		CameraTarget:      [3]float64{params.CameraTarget.X, params.CameraTarget.Y, params.CameraTarget.Z},
		Generative: generativeEnvelope{
			GenerativeParams: generative.Params(),
			Evolution:        generative.Evolution(),
			Tint:             generative.PersonalizedColor(hue).Clamped().Hex(),
		},
		Revision: snap.Revision,
	}
}

func writeWSError(peer *wsPeer, requestID string, code apperrors.Code, metadata map[string]string) error {
	message := i18n.GetCatalog(i18n.BaseLocale).Format(string(code), metadata)
	details := map[string]any(nil)
	if len(metadata) > 0 {
		details = make(map[string]any, len(metadata))
		for k, v := range metadata {
			details[k] = v
		}
	}
	return peer.writeFrame(wsFrame{
		Type:      frameTypeError,
		RequestID: requestID,
		Payload: mustJSON(wsErrorEnvelope{
			Error: wsError{
				Code:      string(code),
				Message:   message,
				Retryable: code == apperrors.CodeFrameRateLimit,
				Details:   details,
			},
		}),
	})
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to marshal websocket frame payload: %v", err)
		return nil
	}
	return b
}

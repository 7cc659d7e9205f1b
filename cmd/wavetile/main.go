package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/greenfold/wavetile.go/client"
	"github.com/greenfold/wavetile.go/storage"
	"github.com/greenfold/wavetile.go/wfc"
)

const cookieName = "wavetileID"
const cookiePath = "/"

// a wavetileSession pairs a browser session with its in-memory
// solver.  The stored session keeps the working rule grid across
// restarts; the solver is rebuilt from it on first contact.
type wavetileSession struct {
	sessionID string
	stored    *storage.Session
	solver    *wfc.Solver
	mutex     sync.Mutex
}

var (
	startTime    = time.Now()
	sessions     = make(map[string]*wavetileSession)
	sessionMutex sync.RWMutex
)

/*

output grid sizing

*/

const (
	gridWidthEnvVar   = "GRID_WIDTH"
	gridHeightEnvVar  = "GRID_HEIGHT"
	defaultGridWidth  = 12
	defaultGridHeight = 12
)

func envDimension(envVar string, fallback int) int {
	if val := os.Getenv(envVar); val != "" {
		if dim, err := strconv.Atoi(val); err == nil && dim > 0 {
			return dim
		}
		log.Printf("Ignoring unusable %s value %q.", envVar, val)
	}
	return fallback
}

/*

session management

*/

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
//
// The logic here is very simple, because it is designed for only
// one server instance: each browser is given a cookie based on the
// time (to the nanosecond) of the first request we received from
// that browser.  Proxied deployments report the original protocol
// in a header, and we keep sessions per protocol so an http tab
// and an https tab to the same endpoint don't share a solve.
func getCookie(w http.ResponseWriter, r *http.Request) string {
	proto := "httpx" // absent other indicators, protocol is unknown

	if forwardedProtocol := r.Header.Get("X-Forwarded-Proto"); forwardedProtocol != "" {
		proto = forwardedProtocol
	}

	// check for an existing cookie whose value matches the protocol
	if sc, e := r.Cookie(cookieName); e == nil {
		if m, e := regexp.MatchString(proto+"-[0-9a-z]{3,}", sc.Value); e == nil && m {
			return sc.Value
		}
	}

	// no session cookie or not a valid session cookie,
	// start a new session with a new cookie
	sid := proto + "-" + strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	sc := &http.Cookie{Name: cookieName, Value: sid, Path: cookiePath}
	http.SetCookie(w, sc)
	return sid
}

// since session selection can happen concurrently from
// simultaneous goroutines, it has to be interlocked
func sessionSelect(w http.ResponseWriter, r *http.Request) *wavetileSession {
	sessionID := getCookie(w, r)
	// look up the session for the cookie
	sessionMutex.RLock()
	session, ok := sessions[sessionID]
	sessionMutex.RUnlock()
	if ok && session != nil && session.solver != nil {
		return session
	}
	// initialize the session, restoring saved work when there is any
	session = &wavetileSession{sessionID: sessionID, stored: &storage.Session{SID: sessionID}}
	if session.stored.Lookup() && session.stored.LoadWork() {
		session.rebuild()
		log.Printf("Restored session %v working from layout %q.", sessionID, session.stored.LID)
	} else {
		session.stored.Created = time.Now().Format(time.RFC3339)
		session.reset("default")
	}
	sessionMutex.Lock()
	sessions[sessionID] = session
	sessionMutex.Unlock()
	return session
}

// reset - restart the session from the named layout's exemplar,
// discarding the working grid and the solve in progress.
func (session *wavetileSession) reset(layoutID string) {
	session.stored.StartLayout(layoutID)
	session.rebuild()
	log.Printf("Initialized session %v from layout %q.", session.sessionID, session.stored.LID)
}

// rebuild - make a fresh solver from the session's working rule
// grid.  A working grid that won't rebuild is discarded in favor
// of the default layout.
func (session *wavetileSession) rebuild() {
	rules, e := wfc.New(session.stored.Summary)
	if e != nil {
		log.Printf("Saved work of session %v won't rebuild (%v); starting over.", session.sessionID, e)
		session.stored.StartLayout("default")
		rules, e = wfc.New(session.stored.Summary)
		if e != nil {
			log.Fatalf("Default layout won't rebuild: %v", e)
		}
	}
	solver, e := wfc.NewSolver(rules,
		envDimension(gridWidthEnvVar, defaultGridWidth),
		envDimension(gridHeightEnvVar, defaultGridHeight),
		wfc.DefaultTuning(), time.Now().UnixNano())
	if e != nil {
		log.Fatalf("Couldn't build a solver for session %v: %v", session.sessionID, e)
	}
	session.solver = solver
}

/*

request handling

*/

func (session *wavetileSession) apiHandler(w http.ResponseWriter, r *http.Request) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	var e error
	switch {
	case r.URL.Path == "/api/state":
		e = session.solver.StateHandler(w, r)
		log.Printf("Returned current state.")
	case r.URL.Path == "/api/rules" && r.Method == "GET":
		e = session.solver.SummaryHandler(w, r)
		log.Printf("Returned working rule grid.")
	case r.URL.Path == "/api/rules" && r.Method == "POST":
		e = session.solver.RulesHandler(w, r)
		if e != nil {
			log.Printf("Rule replacement failed, returned error, no session change.")
		} else {
			session.stored.SaveWork(session.solver.Rules().Summary())
			log.Printf("Rule replacement succeeded, saved work, returned update.")
		}
	case r.URL.Path == "/api/step":
		e = session.solver.StepHandler(w, r)
	case r.URL.Path == "/api/tuning" && r.Method == "GET":
		e = session.solver.TuningHandler(w, r)
	case r.URL.Path == "/api/tuning" && r.Method == "POST":
		e = session.solver.SetTuningHandler(w, r)
	default:
		http.NotFound(w, r)
		return
	}
	if e != nil {
		log.Printf("Session %v %s %s problem: %v", session.sessionID, r.Method, r.URL.Path, e)
	}
}

func (session *wavetileSession) solverHandler(w http.ResponseWriter, r *http.Request) {
	session.mutex.Lock()
	state := session.solver.State()
	palette := session.solver.Rules().Palette().Entries()
	layoutID := session.stored.LID
	session.mutex.Unlock()

	body := client.SolverPage(session.sessionID, layoutID, state, palette, layoutChoices())
	hs := w.Header()
	hs.Add("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func layoutChoices() []client.LayoutChoice {
	infos := storage.ListLayouts()
	choices := make([]client.LayoutChoice, len(infos))
	for i, info := range infos {
		choices[i] = client.LayoutChoice{ID: info.LayoutId, Name: info.Name}
	}
	return choices
}

// errorHandler - panics in request handling turn into error pages
// rather than dropped connections.
func errorHandler(w http.ResponseWriter, r *http.Request) {
	if err := recover(); err != nil {
		log.Printf("Panic handling %s %s: %v", r.Method, r.URL.Path, err)
		body := client.ErrorPage(asErrorValue(err))
		hs := w.Header()
		hs.Add("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(body))
	}
}

func asErrorValue(panicked interface{}) error {
	if e, ok := panicked.(error); ok {
		return e
	}
	return wfc.Error{
		Scope:     wfc.RequestScope,
		Condition: wfc.UnknownCondition,
		Message:   "An unexpected problem interrupted the request.",
	}
}

func serveHTTP(w http.ResponseWriter, r *http.Request) {
	defer errorHandler(w, r)
	if client.StaticHandler(w, r) {
		return
	}
	log.Printf("Handling %s %s...", r.Method, r.URL.Path)
	session := sessionSelect(w, r)
	session.mutex.Lock()
	switch {
	case strings.HasPrefix(r.URL.Path, "/reset/"):
		if len(r.URL.Path) > len("/reset/") {
			session.reset(r.URL.Path[len("/reset/"):])
		} else {
			session.reset("")
		}
		session.mutex.Unlock()
	case strings.HasPrefix(r.URL.Path, "/api/"):
		session.mutex.Unlock()
		session.apiHandler(w, r)
		return
	case strings.HasPrefix(r.URL.Path, "/solver/"):
		session.mutex.Unlock()
		session.solverHandler(w, r)
		return
	default:
		session.mutex.Unlock()
	}
	http.Redirect(w, r, "/solver/", http.StatusFound)
}

func main() {
	if err := client.VerifyResources(); err != nil {
		log.Fatalf("Resource check failed: %v", err)
	}
	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		log.Fatalf("Storage connection failed: %v", err)
	}
	log.Printf("Connected to cache at %q and database at %q.", cacheId, databaseId)

	http.HandleFunc("/", serveHTTP)

	// shut the stores down cleanly on interrupt
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-interrupts
		log.Printf("Received %v; shutting down.", sig)
		storage.Close()
		os.Exit(0)
	}()

	// deployment environment port sensing
	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Printf("Listening on %s...", port)
	err = http.ListenAndServe(port, nil)
	if err != nil {
		storage.Close()
		log.Fatal("Listener failure: ", err)
	}
}

// wavetile.go - a web-based wave-function-collapse map builder.
// Copyright (C) 2025 the wavetile.go authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

package storage

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/greenfold/wavetile.go/wfc"
)

// DefaultLayoutId is the layout a fresh session starts from.  The
// database preparation step guarantees it exists.
const DefaultLayoutId = "sample-1"

// A Session tracks one user's current layout and working rule grid.
// The working grid starts as a copy of the chosen layout and
// diverges as the user edits it in the browser; we persist it so a
// returning user picks up where they left off.
type Session struct {
	// these elements are persisted as part of the session
	SID     string // session ID
	LID     string // ID of the layout being worked from
	Created string // RFC3339 time when the session was created
	Saved   string // RFC3339 time when the session was last saved

	// the working rule grid is persisted separately, as JSON
	Summary *wfc.Summary `redis:"-"` // working rule-grid summary
}

/*

session manipulation

*/

// StartLayout: set the layout ID for the current session and load
// its exemplar as the working rule grid, discarding any edits.  If
// the given layout ID is empty, try using the session's current
// layout ID.  If the given layout ID is the special value "default"
// (or unknown), use the default layout ID.
func (session *Session) StartLayout(lid string) {
	// change to the given lid, making sure it's valid
	if lid == "" {
		lid = session.LID
	} else if lid == "default" {
		lid = DefaultLayoutId
	}
	entry, found := loadLayoutEntry(lid)
	if !found {
		lid = DefaultLayoutId
		entry, found = loadLayoutEntry(lid)
		if !found {
			log.Printf("Default layout %q is missing from storage!", lid)
			panic("no default layout")
		}
	}
	session.LID = lid
	summary, err := entry.makeSummary()
	if err != nil {
		log.Printf("Failed to restore layout %q: %v", lid, err)
		panic(err)
	}
	session.Summary = summary

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	bytes := session.marshalWork()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		_, err = tx.Do("SET", session.workKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of session %q after reset: %v", session.SID, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Reset session %v to start from layout %q.", session.SID, session.LID)
}

// SaveWork: persist the session's working rule grid after an edit.
func (session *Session) SaveWork(summary *wfc.Summary) {
	session.Summary = summary
	session.Saved = time.Now().Format(time.RFC3339)
	bytes := session.marshalWork()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		_, err = tx.Do("SET", session.workKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of %s:%q work: %v", session.SID, session.LID, err)
		}
		return
	}
	rdExecute(body)
}

// Lookup: lookup a session for an ID.  Returns whether the session
// was found in the cache.
func (session *Session) Lookup() (found bool) {
	body := func(tx redis.Conn) error {
		vals, err := redis.Values(tx.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				log.Printf("Redis error on parse of saved session %q: %v", session.SID, err)
				return err
			}
			found = true
			return nil
		}
		if err != nil {
			log.Printf("Redis error on GET of session %q: %v", session.SID, err)
			return err
		}
		return nil
	}
	rdExecute(body)
	return
}

// LoadWork: load the working rule grid from the cache.  Returns
// whether any saved work was found.
func (session *Session) LoadWork() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", session.workKey()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			log.Printf("Error on load of %s:%q work: %v", session.SID, session.LID, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	session.unmarshalWork(bytes)
	return true
}

/*

serialization of working grids into and out of the cache

*/

// marshalWork - get JSON for the working rule grid
func (session *Session) marshalWork() []byte {
	bytes, err := json.Marshal(session.Summary)
	if err != nil {
		log.Printf("Failed to marshal work of %s:%q (%+v) as JSON: %v",
			session.SID, session.LID, *session.Summary, err)
		panic(err)
	}
	return bytes
}

// unmarshalWork - restore the working rule grid from saved JSON
func (session *Session) unmarshalWork(bytes []byte) {
	var summary *wfc.Summary
	err := json.Unmarshal(bytes, &summary)
	if err != nil {
		log.Printf("Failed to unmarshal saved JSON of %s:%q work: %v",
			session.SID, session.LID, err)
		panic(err)
	}
	session.Summary = summary
}

/*

session key generation

*/

// key - returns the session key
func (session *Session) key() string {
	return rdEnv + ":SID:" + session.SID
}

// workKey - returns the key for the session's working rule grid
func (session *Session) workKey() string {
	return session.key() + ":Work"
}

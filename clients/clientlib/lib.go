// /home/krylon/go/src/github.com/blicero/hygieia/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 08. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 17:05:31 krylon>

// Package clientlib talks to the backend's HTTP API on behalf of a
// frontend.
package clientlib

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/logdomain"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/krylib"
	"github.com/gorilla/websocket"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	pathStatus        = "/status"
	pathTick          = "/tick"
	pathDone          = "/done"
	pathGoals         = "/goals"
	pathGoal          = "/goal"
	pathNotifications = "/notifications"
	pathOnboarding    = "/onboarding"
	pathHistory       = "/history"
	pathCountdown     = "/countdown/ws"
	cmdDone           = "done"
)

// ErrStreamClosed is returned when sending on a Countdown that was closed.
var ErrStreamClosed = errors.New("countdown stream is closed")

// Client is the basic implementation of a Hygieia client,
// it implements the fundamental communication with the Server.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if !strings.Contains(srv, "://") {
		srv = "http://" + srv
	}

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	return c, nil
} // func NewClient(srv string) (*Client, error)

// GetLogger returns the Client's Logger.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) endpoint(path string, query url.Values) string {
	var u = *c.Server
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
} // func (c *Client) endpoint(path string, query url.Values) string

func (c *Client) receive(hres *http.Response, v any) error {
	var (
		err    error
		msg    string
		rcvBuf bytes.Buffer
	)

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			hres.Request.URL,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			hres.Request.URL,
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), v); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			hres.Request.URL,
			err.Error())
		return err
	}

	return nil
} // func (c *Client) receive(hres *http.Response, v any) error

func (c *Client) get(path string, query url.Values, v any) error {
	var (
		err  error
		hres *http.Response
		addr = c.endpoint(path, query)
	)

	if hres, err = c.Client.Get(addr); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			addr,
			err.Error())
		return err
	}

	return c.receive(hres, v)
} // func (c *Client) get(path string, query url.Values, v any) error

func (c *Client) post(path string, values url.Values) (*objects.Response, error) {
	var (
		err  error
		hres *http.Response
		ores objects.Response
		addr = c.endpoint(path, nil)
	)

	if values == nil {
		values = make(url.Values)
	}

	if hres, err = c.Client.PostForm(addr, values); err != nil {
		c.log.Printf("[ERROR] Failed to POST to %s: %s\n",
			addr,
			err.Error())
		return nil, err
	} else if err = c.receive(hres, &ores); err != nil {
		return nil, err
	} else if !ores.Status {
		err = fmt.Errorf("Request to %s failed: %s",
			addr,
			ores.Message)
		c.log.Printf("[ERROR] %s\n",
			err.Error())
		return &ores, err
	}

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		addr,
		ores.Message)

	return &ores, nil
} // func (c *Client) post(path string, values url.Values) (*objects.Response, error)

// Status fetches the current goal state and countdown.
func (c *Client) Status() (*objects.Status, error) {
	var status objects.Status

	if err := c.get(pathStatus, nil, &status); err != nil {
		return nil, err
	}

	return &status, nil
} // func (c *Client) Status() (*objects.Status, error)

// Tick asks the backend to run a foreground check, and returns its
// outcome.
func (c *Client) Tick() (string, error) {
	var res, err = c.post(pathTick, nil)

	if err != nil {
		return "", err
	}

	return res.Message, nil
} // func (c *Client) Tick() (string, error)

// Done tells the backend the goal was met.
func (c *Client) Done() error {
	c.log.Printf("[TRACE] ENTER %s\n", krylib.TraceInfo())
	var _, err = c.post(pathDone, nil)
	return err
} // func (c *Client) Done() error

// Goals returns the available goal choices.
func (c *Client) Goals() ([]objects.GoalChoice, error) {
	var goals []objects.GoalChoice

	if err := c.get(pathGoals, nil, &goals); err != nil {
		return nil, err
	}

	return goals, nil
} // func (c *Client) Goals() ([]objects.GoalChoice, error)

// SetGoal changes the daily goal.
func (c *Client) SetGoal(g objects.GoalOffset) error {
	c.log.Printf("[TRACE] ENTER %s\n", krylib.TraceInfo())
	var _, err = c.post(pathGoal, url.Values{
		"offset": []string{strconv.FormatInt(int64(g), 10)},
	})
	return err
} // func (c *Client) SetGoal(g objects.GoalOffset) error

// SetNotifications enables or disables background checks, and returns
// whether they are registered afterwards.
func (c *Client) SetNotifications(on bool) (bool, error) {
	c.log.Printf("[TRACE] ENTER %s\n", krylib.TraceInfo())
	var res, err = c.post(pathNotifications, url.Values{
		"enabled": []string{strconv.FormatBool(on)},
	})

	if err != nil {
		return false, err
	}

	return strconv.ParseBool(res.Message)
} // func (c *Client) SetNotifications(on bool) (bool, error)

// Onboarding returns true if the frontend should show the onboarding
// pages. The backend answers true only once.
func (c *Client) Onboarding() (bool, error) {
	var res objects.Response

	if err := c.get(pathOnboarding, nil, &res); err != nil {
		return false, err
	}

	return res.Status, nil
} // func (c *Client) Onboarding() (bool, error)

// History returns up to cnt of the most recently sent notifications.
func (c *Client) History(cnt int) ([]objects.HistoryEntry, error) {
	var list []objects.HistoryEntry

	if err := c.get(pathHistory, url.Values{"count": []string{strconv.Itoa(cnt)}}, &list); err != nil {
		return nil, err
	}

	return list, nil
} // func (c *Client) History(cnt int) ([]objects.HistoryEntry, error)

// Countdown is a live stream of countdown frames.
type Countdown struct {
	conn   *websocket.Conn
	log    *log.Logger
	wlock  sync.Mutex
	closed bool
}

// Countdown opens the live countdown stream.
func (c *Client) Countdown(ctx context.Context) (*Countdown, error) {
	var (
		err  error
		conn *websocket.Conn
		u    = *c.Server
	)

	u.Path = pathCountdown

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	if conn, _, err = websocket.DefaultDialer.DialContext(ctx, u.String(), nil); err != nil {
		c.log.Printf("[ERROR] Cannot connect to %s: %s\n",
			u.String(),
			err.Error())
		return nil, err
	}

	return &Countdown{conn: conn, log: c.log}, nil
} // func (c *Client) Countdown(ctx context.Context) (*Countdown, error)

// Next blocks until the next frame arrives.
func (cd *Countdown) Next() (*objects.Status, error) {
	var (
		err    error
		buf    []byte
		status objects.Status
	)

	if _, buf, err = cd.conn.ReadMessage(); err != nil {
		return nil, err
	} else if err = ffjson.Unmarshal(buf, &status); err != nil {
		cd.log.Printf("[ERROR] Cannot parse countdown frame: %s\n",
			err.Error())
		return nil, err
	}

	return &status, nil
} // func (cd *Countdown) Next() (*objects.Status, error)

// Done tells the backend the goal was met. The countdown restarts.
func (cd *Countdown) Done() error {
	cd.wlock.Lock()
	defer cd.wlock.Unlock()

	if cd.closed {
		return ErrStreamClosed
	}

	return cd.conn.WriteMessage(websocket.TextMessage, []byte(cmdDone))
} // func (cd *Countdown) Done() error

// Close ends the stream.
// Calling Close more than once is harmless.
func (cd *Countdown) Close() error {
	cd.wlock.Lock()
	defer cd.wlock.Unlock()

	if cd.closed {
		return nil
	}

	cd.closed = true

	var err = cd.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	if cerr := cd.conn.Close(); err == nil {
		err = cerr
	}

	return err
} // func (cd *Countdown) Close() error

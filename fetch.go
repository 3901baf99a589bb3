package schedfa

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
)

// this file refreshes the local historical CSV datasets from an HTTP
// provider returning daily close series as JSON. Providers disagree on the
// envelope, so the date and close columns are addressed by jsonpath.

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskCache keys include the day, so the local copy expires daily:
	// historical series gain at most one point per day anyway.
	key := fmt.Sprintf("%s %s %s", Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// NewCachedClient returns an HTTP client whose responses are cached on disk
// until the end of the day.
func NewCachedClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// FetchDailyCloses fetches a daily close series from 'addr' and extracts the
// (date, close) columns with the two jsonpath expressions. The result is raw
// rows in the shape BuildSeries and AppendHistory accept.
func FetchDailyCloses(client *http.Client, addr, datesPath, closesPath string) ([][2]string, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", addr, err)
	}

	dates, err := jsonpathStrings(jobj, datesPath)
	if err != nil {
		return nil, fmt.Errorf("error parsing dates %q: %w", datesPath, err)
	}
	closes, err := jsonpathStrings(jobj, closesPath)
	if err != nil {
		return nil, fmt.Errorf("error parsing closes %q: %w", closesPath, err)
	}
	if len(dates) != len(closes) {
		return nil, fmt.Errorf("%w: %d dates for %d closes", ErrMalformedData, len(dates), len(closes))
	}

	rows := make([][2]string, len(dates))
	for i := range dates {
		rows[i] = [2]string{dates[i], closes[i]}
	}
	return rows, nil
}

// jsonpathStrings evaluates a jsonpath expression expected to yield a list
// and renders every element as a string.
func jsonpathStrings(jobj any, path string) ([]string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	// jsonpath is never clear about whether it returns a list or a single
	// answer; normalize to a list.
	jlist, ok := jval.([]any)
	if !ok {
		jlist = []any{jval}
	}
	out := make([]string, 0, len(jlist))
	for _, v := range jlist {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case float64:
			out = append(out, fmt.Sprintf("%g", t))
		default:
			return nil, fmt.Errorf("%s: unexpected element %v", path, v)
		}
	}
	return out, nil
}

// AppendHistory merges raw rows into the historical CSV at path, rewriting
// it in canonical form: a "Date,Close" header, ISO dates, one row per day,
// ascending. On a date collision the fetched row wins. A missing file just
// means a first fetch.
func AppendHistory(path string, rows [][2]string) error {
	existing, err := readRows(path)
	if err != nil && !errors.Is(err, ErrMissingSource) {
		return err
	}

	s, err := BuildSeries(append(existing, rows...))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Date,Close")
	for obs := range s.All() {
		fmt.Fprintf(w, "%s,%s\n", obs.Day, obs.Value)
	}
	return w.Flush()
}

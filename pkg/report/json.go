package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/0xmhha/billscan/pkg/aggregator"
	"github.com/0xmhha/billscan/pkg/directory"
)

// jsonFormatter renders the report as JSON.
type jsonFormatter struct {
	config Config
}

// jsonReport is the top-level JSON shape.
type jsonReport struct {
	Directory   map[string]string `json:"directory"`
	Starting    time.Time         `json:"starting"`
	Ending      time.Time         `json:"ending"`
	Subscribers []jsonSubscriber  `json:"subscribers"`
}

type jsonSubscriber struct {
	Name         string            `json:"name"`
	Number       string            `json:"number"`
	CallsIn      int               `json:"calls_in"`
	CallsOut     int               `json:"calls_out"`
	TextsIn      int               `json:"texts_in"`
	TextsOut     int               `json:"texts_out"`
	Counterparts []jsonCounterpart `json:"counterparts"`
}

type jsonCounterpart struct {
	Number      string `json:"number"`
	Name        string `json:"name,omitempty"`
	CallsFrom   int    `json:"calls_from"`
	CallsTo     int    `json:"calls_to"`
	TextsFrom   int    `json:"texts_from"`
	TextsTo     int    `json:"texts_to"`
	SessionsIn  int    `json:"sessions_in"`
	SessionsOut int    `json:"sessions_out"`
}

// FormatReport implements Formatter.FormatReport.
func (f *jsonFormatter) FormatReport(w io.Writer, usage *aggregator.Usage, dir directory.Directory) error {
	out := jsonReport{
		Directory:   dir,
		Starting:    usage.Earliest,
		Ending:      usage.Latest,
		Subscribers: make([]jsonSubscriber, 0, len(usage.Subscribers)),
	}

	for _, sub := range usage.Subscribers {
		js := jsonSubscriber{
			Name:         sub.Name,
			Number:       sub.Number,
			CallsIn:      sub.CallsIn,
			CallsOut:     sub.CallsOut,
			TextsIn:      sub.TextsIn,
			TextsOut:     sub.TextsOut,
			Counterparts: make([]jsonCounterpart, 0, len(sub.Counterparts)),
		}

		for _, cp := range sub.Counterparts {
			name := ""
			if n, ok := dir[cp.Number]; ok {
				name = n
			}
			js.Counterparts = append(js.Counterparts, jsonCounterpart{
				Number:      cp.Number,
				Name:        name,
				CallsFrom:   cp.CallsFrom,
				CallsTo:     cp.CallsTo,
				TextsFrom:   cp.TextsFrom,
				TextsTo:     cp.TextsTo,
				SessionsIn:  cp.SessionsIn,
				SessionsOut: cp.SessionsOut,
			})
		}

		out.Subscribers = append(out.Subscribers, js)
	}

	encoder := json.NewEncoder(w)
	if !f.config.Compact {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(out)
}

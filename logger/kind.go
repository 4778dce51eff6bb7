/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package logger

import (
	"log/syslog"

	"github.com/sirupsen/logrus"
)

// Kind is the closed set of event variants the acceptor ever logs. It
// mirrors od_logger_event_t from the original C logger (od_logger_ident_tab
// in logger.c), mapping each variant to a syslog priority, a logrus level
// and an optional short tag shown only on error/debug lines. The id string
// itself (see package id) already carries its own category prefix ("c" for
// clients), so Kind does not add a second one.
type Kind uint8

const (
	KindGeneric Kind = iota
	KindError
	KindClientInfo
	KindClientError
	KindClientDebug
	KindServerInfo
	KindServerError
	KindServerDebug
)

type ident struct {
	priority syslog.Priority
	level    logrus.Level
	short    string
	debug    bool
}

var identTab = map[Kind]ident{
	KindGeneric:     {syslog.LOG_INFO, logrus.InfoLevel, "", false},
	KindError:       {syslog.LOG_ERR, logrus.ErrorLevel, "error", false},
	KindClientInfo:  {syslog.LOG_INFO, logrus.InfoLevel, "", false},
	KindClientError: {syslog.LOG_ERR, logrus.ErrorLevel, "error", false},
	KindClientDebug: {syslog.LOG_DEBUG, logrus.DebugLevel, "debug", true},
	KindServerInfo:  {syslog.LOG_INFO, logrus.InfoLevel, "", false},
	KindServerError: {syslog.LOG_ERR, logrus.ErrorLevel, "error", false},
	KindServerDebug: {syslog.LOG_DEBUG, logrus.DebugLevel, "debug", true},
}

// Priority returns the syslog priority associated with the kind.
func (k Kind) Priority() syslog.Priority {
	return identTab[k].priority
}

// Level returns the logrus level associated with the kind.
func (k Kind) Level() logrus.Level {
	return identTab[k].level
}

// ShortTag returns the short tag shown only on error/debug variants, empty
// otherwise.
func (k Kind) ShortTag() string {
	return identTab[k].short
}

// IsDebug reports whether the variant is suppressed unless debug logging is
// enabled.
func (k Kind) IsDebug() bool {
	return identTab[k].debug
}

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindError:
		return "error"
	case KindClientInfo:
		return "client-info"
	case KindClientError:
		return "client-error"
	case KindClientDebug:
		return "client-debug"
	case KindServerInfo:
		return "server-info"
	case KindServerError:
		return "server-error"
	case KindServerDebug:
		return "server-debug"
	default:
		return "unknown"
	}
}

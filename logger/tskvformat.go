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
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// TSKVFormatter renders a tab-separated key=value line (the "tskv" format),
// one field per tab. od_logger_tskv in the original C logger voided every
// parameter and emitted nothing; here it is a real formatter rather than a
// stub, since a structured sink with no output defeats its own purpose.
type TSKVFormatter struct{}

func (TSKVFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString("tskv")

	writeField(&b, "tskv_format", "pgdoor-log")
	writeField(&b, "timestamp", e.Time.Format("2006-01-02 15:04:05.000"))
	writeField(&b, "pid", strconv.Itoa(pid))
	writeField(&b, "level", e.Level.String())

	if v, ok := e.Data[fieldKind].(string); ok && v != "" {
		writeField(&b, "kind", v)
	}
	if v, ok := e.Data[fieldID].(string); ok && v != "" {
		writeField(&b, "id", v)
	}
	if v, ok := e.Data[fieldContext].(string); ok && v != "" {
		writeField(&b, "context", v)
	}

	writeField(&b, "message", tskvEscape(e.Message))
	b.WriteByte('\n')

	out := []byte(b.String())
	if len(out) > lineBudget {
		out = out[:lineBudget-1]
		out = append(out, '\n')
	}

	return out, nil
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteByte('\t')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
}

// tskvEscape replaces the tskv format's reserved bytes so a message can
// never inject a spurious field boundary.
func tskvEscape(s string) string {
	r := strings.NewReplacer("\t", "\\t", "\n", "\\n", "=", "\\=")
	return r.Replace(s)
}

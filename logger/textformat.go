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
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// lineBudget mirrors the 512-byte stack buffer od_logger_text formats into;
// overflow is truncated silently rather than reallocated.
const lineBudget = 512

var pid = os.Getpid()

// TextFormatter renders one logrus.Entry into the fixed line layout:
//
//	<pid> <DD Mon HH:MM:SS.mmm>  [<short-tag>: ]<id-prefix><id>: [(<context>) ]<message>\n
type TextFormatter struct{}

func (TextFormatter) Format(e *logrus.Entry) ([]byte, error) {
	ts := e.Time.Format("02 Jan 15:04:05.000")

	var line string
	line = fmt.Sprintf("%d %s  ", pid, ts)

	if tag, ok := e.Data[fieldShortTag].(string); ok && tag != "" {
		line += tag + ": "
	}

	if v, ok := e.Data[fieldID].(string); ok && v != "" {
		line += v + ": "
	}

	if v, ok := e.Data[fieldContext].(string); ok && v != "" {
		line += "(" + v + ") "
	}

	line += e.Message + "\n"

	b := []byte(line)
	if len(b) > lineBudget {
		b = b[:lineBudget-1]
		b = append(b, '\n')
	}

	return b, nil
}

//go:build unit

package mailer_test

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"calendar-booking/internal/infra"
	"calendar-booking/internal/infra/mailer"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuildMessage(t *testing.T) {
	id := mailer.NewMessageID("Revive <bookings@revive.example>")
	raw := mailer.BuildMessage(id, "Revive <bookings@revive.example>", "client@example.com", "Your appointment is confirmed — Revive Studio", "line one\nline two")

	head, body, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok)
	assert.Contains(t, head, "To: client@example.com")
	assert.Contains(t, head, "Subject: =?utf-8?q?")
	assert.True(t, strings.HasPrefix(id, "<") && strings.HasSuffix(id, "@revive.example>"), id)
	assert.Contains(t, head, "Message-ID: "+id+"\r\n")
	assert.Contains(t, head, "Content-Type: text/plain; charset=utf-8")
	assert.Equal(t, "line one\r\nline two\r\n", body)
	assert.NotContains(t, strings.ReplaceAll(raw, "\r\n", ""), "\n")
}

func TestNew(t *testing.T) {
	s := mailer.New(config.SMTPConfig{}, logger)
	assert.False(t, s.Enabled())
	id, err := s.Send(context.Background(), shared.Message{To: "a@b.com"})
	assert.NoError(t, err)
	assert.Empty(t, id)

	s = mailer.New(config.SMTPConfig{Host: "smtp.example.com", Port: 587}, logger)
	assert.True(t, s.Enabled())
}

// fakeSMTP accepts one plain-text session and records the DATA section.
type fakeSMTP struct {
	ln   net.Listener
	mu   sync.Mutex
	rcpt []string
	data string
}

func startFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	f := &fakeSMTP{ln: ln}
	t.Cleanup(func() { _ = ln.Close() })
	go f.serve()
	return f
}

func (f *fakeSMTP) port() int {
	return f.ln.Addr().(*net.TCPAddr).Port
}

func (f *fakeSMTP) serve() {
	conn, err := f.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }

	reply("220 fake ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			reply("250 fake")
		case strings.HasPrefix(cmd, "MAIL FROM"):
			reply("250 ok")
		case strings.HasPrefix(cmd, "RCPT TO"):
			f.mu.Lock()
			f.rcpt = append(f.rcpt, strings.TrimSpace(line))
			f.mu.Unlock()
			reply("250 ok")
		case cmd == "DATA":
			reply("354 go ahead")
			var sb strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				sb.WriteString(l)
			}
			f.mu.Lock()
			f.data = sb.String()
			f.mu.Unlock()
			reply("250 queued")
		case cmd == "QUIT":
			reply("221 bye")
			return
		default:
			reply("250 ok")
		}
	}
}

func TestSMTPSenderSend(t *testing.T) {
	srv := startFakeSMTP(t)
	sender := mailer.NewSMTPSender(config.SMTPConfig{
		Host: "127.0.0.1",
		Port: srv.port(),
		From: "bookings@revive.example",
		Dial: time.Second,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	id, err := sender.Send(ctx, shared.Message{Kind: "smtp_test", To: "owner@example.com", Subject: "hi", Body: "hello"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, []string{"RCPT TO:<owner@example.com>"}, srv.rcpt)
	assert.Contains(t, srv.data, "From: bookings@revive.example")
	assert.Contains(t, srv.data, "hello")
	assert.Contains(t, srv.data, "Message-ID: "+id+"\r\n")
}

func TestSMTPSenderFailures(t *testing.T) {
	t.Run("no recipient", func(t *testing.T) {
		sender := mailer.NewSMTPSender(config.SMTPConfig{Host: "127.0.0.1", Port: 2525}, logger)
		_, err := sender.Send(context.Background(), shared.Message{})
		assert.True(t, infra.IsKind(err, infra.KindMalformed))
	})

	t.Run("unreachable server", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		require.NoError(t, ln.Close())

		sender := mailer.NewSMTPSender(config.SMTPConfig{Host: "127.0.0.1", Port: port, Dial: time.Second}, logger)
		_, err = sender.Send(context.Background(), shared.Message{To: "a@b.com"})
		assert.True(t, infra.IsKind(err, infra.KindDeliveryFailure), strconv.Itoa(port))
	})
}

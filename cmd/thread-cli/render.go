package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pribylovaa/comment-thread/internal/richtext"
	"github.com/pribylovaa/comment-thread/internal/thread"
)

const timeLayout = "2006-01-02 15:04"

// render печатает дерево карточек с отступом по глубине.
func render(w io.Writer, views []thread.View) {
	if len(views) == 0 {
		fmt.Fprintln(w, "no comments yet")
		return
	}

	for _, v := range views {
		renderView(w, v)
	}
}

func renderView(w io.Writer, v thread.View) {
	pad := strings.Repeat("  ", v.Depth)

	if v.Deleted {
		fmt.Fprintf(w, "%s[%s] (deleted)%s\n", pad, v.ID, deniedMark(v))
	} else {
		name := "anonymous"
		if v.Author != nil && v.Author.DisplayName != "" {
			name = v.Author.DisplayName
		}

		likes := fmt.Sprintf("likes %d", v.LikeCount)
		if v.Liked {
			likes += " (you)"
		}

		fmt.Fprintf(w, "%s[%s] %s · %s · %s%s\n",
			pad, v.ID, name, v.CreatedAt.Local().Format(timeLayout), likes, deniedMark(v))

		for _, line := range strings.Split(richtext.PlainText(v.Content), "\n") {
			fmt.Fprintf(w, "%s  %s\n", pad, line)
		}

		if a := actions(v); a != "" {
			fmt.Fprintf(w, "%s  > %s\n", pad, a)
		}
	}

	for _, r := range v.Replies {
		renderView(w, r)
	}
}

func deniedMark(v thread.View) string {
	if v.Denied {
		return " !"
	}
	return ""
}

// actions — доступные действия карточки одной строкой.
func actions(v thread.View) string {
	var out []string

	switch {
	case v.ReplyBusy:
		out = append(out, "replying...")
	case v.CanReply:
		out = append(out, "reply")
	}
	if v.ReplyHint != "" {
		out = append(out, fmt.Sprintf("(%s)", v.ReplyHint))
	}

	if v.CanLike {
		out = append(out, "like")
	}

	switch {
	case v.DeleteBusy:
		out = append(out, "deleting...")
	case v.Confirming:
		out = append(out, "delete? Are you sure")
	case v.CanDelete:
		out = append(out, "delete")
	}

	if !v.TimelineDisabled && v.TimelineURL != "" {
		out = append(out, "timeline "+v.TimelineURL)
	}

	return strings.Join(out, " | ")
}

// renderEvents печатает накопленные уведомления.
func renderEvents(w io.Writer, events []thread.Event) {
	for _, ev := range events {
		line := fmt.Sprintf("%s: %s", ev.Kind, ev.Title)
		if ev.Description != "" {
			line += " (" + ev.Description + ")"
		}
		fmt.Fprintln(w, line)
	}
}

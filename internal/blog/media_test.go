package blog

import (
	"encoding/json"
	"testing"
)

func TestNormalizeMedia_Aliases(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantName  string
		wantURL   string
		wantSize  int64
		wantFname string
	}{
		{
			name:     "canonical fields",
			raw:      `{"id":"m1","originalName":"cat.png","url":"https://cdn/cat.png","size":2048}`,
			wantName: "cat.png",
			wantURL:  "https://cdn/cat.png",
			wantSize: 2048,
		},
		{
			name:     "fileName alias",
			raw:      `{"id":"m2","fileName":"dog.jpg"}`,
			wantName: "dog.jpg",
		},
		{
			name:    "originalUrl alias",
			raw:     `{"id":"m3","originalUrl":"https://cdn/orig.gif"}`,
			wantURL: "https://cdn/orig.gif",
		},
		{
			name:     "fileSize alias",
			raw:      `{"id":"m4","fileSize":512}`,
			wantSize: 512,
		},
		{
			name:     "only legacy names",
			raw:      `{"id":"m5","fileName":"a.pdf","originalUrl":"https://cdn/a.pdf","fileSize":99}`,
			wantName: "a.pdf",
			wantURL:  "https://cdn/a.pdf",
			wantSize: 99,
		},
		{
			name:     "canonical wins over alias",
			raw:      `{"id":"m6","originalName":"new.png","fileName":"old.png","url":"https://new","originalUrl":"https://old","size":10,"fileSize":20}`,
			wantName: "new.png",
			wantURL:  "https://new",
			wantSize: 10,
		},
		{
			name:     "null canonical falls back",
			raw:      `{"id":"m7","originalName":null,"fileName":"fallback.txt","size":0,"fileSize":7}`,
			wantName: "fallback.txt",
			wantSize: 7,
		},
		{
			name: "everything missing",
			raw:  `{"id":"m8"}`,
		},
		{
			name:      "filename field is left alone",
			raw:       `{"id":"m9","filename":"stored-123.png","fileName":"upload.png"}`,
			wantName:  "upload.png",
			wantFname: "stored-123.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NormalizeMedia(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("NormalizeMedia() error = %v", err)
			}
			if m.OriginalName != tt.wantName {
				t.Errorf("OriginalName = %q, want %q", m.OriginalName, tt.wantName)
			}
			if m.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", m.URL, tt.wantURL)
			}
			if m.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", m.Size, tt.wantSize)
			}
			if m.Filename != tt.wantFname {
				t.Errorf("Filename = %q, want %q", m.Filename, tt.wantFname)
			}
		})
	}
}

func TestNormalizeMedia_InvalidJSON(t *testing.T) {
	if _, err := NormalizeMedia(json.RawMessage(`[1,2]`)); err == nil {
		t.Fatal("NormalizeMedia() expected error for non-object record")
	}
}

func TestNormalizeMediaList(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"id":"a","fileName":"a.png"}`),
		json.RawMessage(`{"id":"b","originalName":"b.png"}`),
	}

	got, err := NormalizeMediaList(raws)
	if err != nil {
		t.Fatalf("NormalizeMediaList() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].OriginalName != "a.png" || got[1].OriginalName != "b.png" {
		t.Errorf("names = %q, %q", got[0].OriginalName, got[1].OriginalName)
	}

	empty, err := NormalizeMediaList(nil)
	if err != nil {
		t.Fatalf("NormalizeMediaList(nil) error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("NormalizeMediaList(nil) = %v, want empty non-nil slice", empty)
	}
}

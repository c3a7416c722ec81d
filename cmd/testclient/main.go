// Command testclient posts a small canned Deepgram payload to a running
// service instance and prints the normalized response.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
)

const samplePayload = `{
  "results": {
    "channels": [{
      "alternatives": [{
        "transcript": "hello there how can I help",
        "words": [
          {"word": "hello", "punctuated_word": "Hello", "start": 0.0, "end": 0.4, "confidence": 0.98},
          {"word": "there", "punctuated_word": "there.", "start": 0.4, "end": 0.8, "confidence": 0.97},
          {"word": "how", "punctuated_word": "How", "start": 1.2, "end": 1.4, "confidence": 0.99},
          {"word": "can", "punctuated_word": "can", "start": 1.4, "end": 1.6, "confidence": 0.98},
          {"word": "i", "punctuated_word": "I", "start": 1.6, "end": 1.7, "confidence": 0.99},
          {"word": "help", "punctuated_word": "help?", "start": 1.7, "end": 2.1, "confidence": 0.96}
        ]
      }]
    }],
    "utterances": [
      {"speaker": 0, "start": 0.0, "end": 0.9},
      {"speaker": 1, "start": 1.1, "end": 2.2}
    ]
  }
}`

func main() {
	addr := flag.String("addr", "http://localhost:8080", "service base URL")
	provider := flag.String("provider", "deepgram", "provider id to normalize as")
	flag.Parse()

	url := fmt.Sprintf("%s/v1/normalize/%s", *addr, *provider)
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(samplePayload)))
	if err != nil {
		log.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read response: %v", err)
	}

	fmt.Printf("status: %s\n%s\n", resp.Status, body)
}

package main

// renderpdf renders one invoice JSON file into a PDF from the command line.
// Useful for reproducing a customer's document without running the server:
//
//	renderpdf -in factura.json -out factura.pdf
//
// The input file holds the same body POST /v1/facturas/pdf accepts:
// {"invoice": {...}, "gym": {...}}.

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/dto"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/pdf"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	in := flag.String("in", "", "invoice JSON file ({\"invoice\": ..., \"gym\": ...})")
	out := flag.String("out", "", "output PDF path (default: input name with .pdf)")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal().Err(err).Str("file", *in).Msg("cannot read input")
	}

	var req dto.RenderInvoiceRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Fatal().Err(err).Msg("invalid invoice JSON")
	}
	if req.Invoice == nil {
		log.Fatal().Msg("input is missing the \"invoice\" object")
	}

	data, err := pdf.GenerateInvoicePDF(req.Invoice, req.Gym)
	if err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}

	target := *out
	if target == "" {
		target = strings.TrimSuffix(*in, ".json") + ".pdf"
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		log.Fatal().Err(err).Str("file", target).Msg("cannot write PDF")
	}
	log.Info().Str("file", target).Int("bytes", len(data)).Msg("PDF generated")
}

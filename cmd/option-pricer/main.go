package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/contactkeval/option-pricer/internal/convergence"
	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/report"
	"github.com/contactkeval/option-pricer/internal/scenario"
)

func main() {
	configPath := flag.String("config", filepath.Join("scenarios", "reference_call.json"), "path to JSON scenario")
	rest := flag.Bool("rest", false, "run as REST server (accept pricing jobs)")
	port := flag.String("port", ":8080", "REST server listen address")
	verbosity := flag.Int("v", -1, "log verbosity override (0=errors,1=info,2=debug,3=trace)")
	flag.Parse()

	if *rest {
		if *verbosity >= 0 {
			logger.SetVerbosity(*verbosity)
		}
		serve(*port)
		return
	}

	sc, err := scenario.Load(*configPath)
	if err != nil {
		log.Fatalf("loading scenario: %v", err)
	}
	if *verbosity >= 0 {
		sc.Verbosity = *verbosity
	}
	logger.SetVerbosity(sc.Verbosity)

	// choose provider
	var prov data.Provider
	apiKey := os.Getenv("MASSIVE_API_KEY")
	if apiKey != "" {
		prov = data.NewMassiveProvider(apiKey)
		logger.Infof("massive provider enabled")
	} else {
		prov = data.NewSyntheticProvider(time.Now().UnixNano())
		logger.Infof("synthetic provider enabled")
	}

	params, err := sc.Resolve(prov)
	if err != nil {
		log.Fatalf("resolving scenario: %v", err)
	}
	typ := pricing.OptionType(sc.OptionType)

	start := time.Now()

	closedForm, err := pricing.BlackScholes(params, typ)
	if err != nil {
		log.Fatalf("closed-form pricing failed: %v", err)
	}
	logger.Infof("closed-form %s price = %.6f", typ, closedForm)

	res, err := convergence.Study(params, typ, sc.Steps)
	if err != nil {
		log.Fatalf("convergence study failed: %v", err)
	}
	for _, pt := range res.Points {
		logger.Infof("lattice n=%-5d price=%.6f abs_err=%.6f", pt.Steps, pt.Lattice, pt.AbsError)
	}

	if err := os.MkdirAll(sc.ReportDir, 0755); err != nil {
		logger.Errorf("could not create report dir %s: %v", sc.ReportDir, err)
	}
	_ = report.WriteJSON(res, sc.ReportDir)
	_ = report.WriteCSV(res, sc.ReportDir)

	if sc.TraceSteps > 0 {
		lat, err := pricing.NewLattice(params, sc.TraceSteps)
		if err != nil {
			log.Fatalf("trace lattice failed: %v", err)
		}
		payoff, err := pricing.PayoffFor(typ)
		if err != nil {
			log.Fatalf("trace payoff failed: %v", err)
		}
		_ = report.WriteNodesCSV(lat.Nodes(payoff), sc.ReportDir)
		logger.Infof("wrote %d terminal nodes for n=%d", sc.TraceSteps+1, sc.TraceSteps)
	}

	logger.Infof("finished in %v, wrote %d points to %s", time.Since(start), len(res.Points), sc.ReportDir)
}

// priceRequest is the REST payload shared by /price and /converge.
type priceRequest struct {
	pricing.MarketParameters
	OptionType pricing.OptionType `json:"option_type"`
	Steps      []int              `json:"steps,omitempty"`
}

func serve(port string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/price", func(w http.ResponseWriter, r *http.Request) {
		logger.Infof("received /price request")
		var req priceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.OptionType == "" {
			req.OptionType = pricing.Call
		}
		price, err := pricing.BlackScholes(req.MarketParameters, req.OptionType)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]float64{"price": price})
	})

	mux.HandleFunc("/converge", func(w http.ResponseWriter, r *http.Request) {
		logger.Infof("received /converge request")
		var req priceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.OptionType == "" {
			req.OptionType = pricing.Call
		}
		res, err := convergence.Study(req.MarketParameters, req.OptionType, req.Steps)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })

	logger.Infof("starting REST server on %s", port)
	log.Fatal(http.ListenAndServe(port, mux))
}

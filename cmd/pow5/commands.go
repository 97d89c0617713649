package main

import (
	"context"
	"fmt"

	"github.com/keypears/keypears/app/evaluator"
	"github.com/keypears/keypears/domain/hashes"
	"github.com/keypears/keypears/infrastructure/os/signal"
	"github.com/pkg/errors"
)

func runBlake3(p *printer, cfg *blake3Config, source *inputSource) error {
	encoded, err := source.valueOrRead(cfg.Data, "data")
	if err != nil {
		return err
	}
	data, err := decode(encoded, encodingBase64)
	if err != nil {
		return err
	}

	hash := hashes.Blake3Hash(data)
	log.Debugf("Hashed %d bytes: %s", len(data), hash)
	return p.print(&hashResult{Hash: hash.String()}, hash.String())
}

func runWorkPar(p *printer, cfg *workParConfig, source *inputSource) error {
	variant, header, err := readHeader(&cfg.HeaderFlags, source)
	if err != nil {
		return err
	}

	work, err := variant.Work(header)
	if err != nil {
		return err
	}
	return p.print(&hashResult{Hash: work.String()}, work.String())
}

func runIterate(p *printer, cfg *iterateConfig, source *inputSource) error {
	variant, header, err := readHeader(&cfg.HeaderFlags, source)
	if err != nil {
		return err
	}
	header, err = applyNonce(variant, header, cfg.Nonce, cfg.WideNonce)
	if err != nil {
		return err
	}

	hash, err := variant.ElementaryIteration(header)
	if err != nil {
		return err
	}
	return p.print(&hashResult{Hash: hash.String()}, hash.String())
}

func runInsertNonce(p *printer, cfg *insertNonceConfig, source *inputSource) error {
	if cfg.Nonce == "" && cfg.WideNonce == "" {
		return errors.New("either --nonce or --wide-nonce is required")
	}
	variant, header, err := readHeader(&cfg.HeaderFlags, source)
	if err != nil {
		return err
	}
	header, err = applyNonce(variant, header, cfg.Nonce, cfg.WideNonce)
	if err != nil {
		return err
	}

	encoded, err := encode(header, cfg.Encoding)
	if err != nil {
		return err
	}
	return p.print(&headerResult{Variant: variant.String(), Header: encoded}, encoded)
}

func runEvaluate(ctx context.Context, p *printer, cfg *evaluateConfig, source *inputSource) error {
	variant, header, err := readHeader(&cfg.HeaderFlags, source)
	if err != nil {
		return err
	}

	evaluatorConfig := &evaluator.Config{
		Variant: variant,
		Header:  header,
		Start:   cfg.Start,
		Count:   cfg.Count,
		Workers: cfg.Workers,
	}
	stats, err := evaluator.Evaluate(ctx, evaluatorConfig, func(result *evaluator.Result) error {
		hash := result.Hash.String()
		return p.print(&nonceResult{Nonce: result.Nonce, Hash: hash}, fmt.Sprintf("%d %s", result.Nonce, hash))
	})
	if err != nil {
		return err
	}

	if p.useJSON {
		return p.print(&evaluationSummary{
			Evaluated: stats.Evaluated,
			Seconds:   stats.Duration.Seconds(),
			HashRate:  stats.HashRate(),
		}, "")
	}
	return nil
}

// interruptibleContext returns a context that's cancelled once an interrupt signal is received
func interruptibleContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	interrupt := signal.InterruptListener()
	spawn("interruptibleContext", func() {
		select {
		case <-interrupt:
			cancel()
		case <-ctx.Done():
		}
	})
	return ctx, cancel
}

func runCommand(p *printer, subCommand string, commandConfig interface{}, source *inputSource) error {
	switch subCommand {
	case blake3SubCmd:
		return runBlake3(p, commandConfig.(*blake3Config), source)
	case workParSubCmd:
		return runWorkPar(p, commandConfig.(*workParConfig), source)
	case iterateSubCmd:
		return runIterate(p, commandConfig.(*iterateConfig), source)
	case insertNonceSubCmd:
		return runInsertNonce(p, commandConfig.(*insertNonceConfig), source)
	case evaluateSubCmd:
		ctx, cancel := interruptibleContext()
		defer cancel()
		return runEvaluate(ctx, p, commandConfig.(*evaluateConfig), source)
	}
	return errors.Errorf("unknown sub-command '%s'", subCommand)
}

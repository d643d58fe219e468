// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	sm "github.com/someonegg/stablematch"
)

var errUnstable = errors.New("assignment is not stable")

func doMatch(ctx context.Context, logger *zap.Logger,
	instanceFile, outputFile string, workers int, verify bool) error {

	inst, err := loadInstance(instanceFile)
	if err != nil {
		return fmt.Errorf("load instance file failed: %w", err)
	}
	logger.Info("instance loaded",
		zap.String("file", instanceFile),
		zap.Int("suitors", len(inst.Suitors)),
		zap.Int("suiteds", len(inst.Suiteds)))

	matcher := sm.DeferredAcceptance(sm.WithLogger(logger), sm.WithWorkers(workers))

	a, err := matcher.Match(inst)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if verify {
		if err := sm.CheckCapacity(inst, a); err != nil {
			return fmt.Errorf("verify failed: %w", err)
		}
		if err := checkStable(logger, inst, a); err != nil {
			return err
		}
	}

	if err := writeAssignment(outputFile, a); err != nil {
		return fmt.Errorf("write assignment file failed: %w", err)
	}

	return nil
}

func doVerify(ctx context.Context, logger *zap.Logger, instanceFile, assignmentFile string) error {
	inst, err := loadInstance(instanceFile)
	if err != nil {
		return fmt.Errorf("load instance file failed: %w", err)
	}

	a, err := loadAssignment(assignmentFile)
	if err != nil {
		return fmt.Errorf("load assignment file failed: %w", err)
	}

	if err := sm.CheckCapacity(inst, a); err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}
	return checkStable(logger, inst, a)
}

func checkStable(logger *zap.Logger, inst *sm.Instance, a sm.Assignment) error {
	pair, found, err := sm.FindBlockingPair(inst, a)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}
	if found {
		logger.Warn("blocking pair",
			zap.Int("suitor", pair.SuitorID),
			zap.Int("suited", pair.SuitedID))
		return fmt.Errorf("%w: suitor %d and suited %d block", errUnstable, pair.SuitorID, pair.SuitedID)
	}
	logger.Info("assignment is stable")
	return nil
}

func isYAML(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decodeFile(file string, v interface{}) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	if isYAML(file) {
		return yaml.Unmarshal(data, v)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func loadInstance(file string) (*sm.Instance, error) {
	var inst sm.Instance
	if err := decodeFile(file, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

func loadAssignment(file string) (sm.Assignment, error) {
	var a sm.Assignment
	if err := decodeFile(file, &a); err != nil {
		return nil, err
	}
	return a, nil
}

func writeAssignment(file string, a sm.Assignment) error {
	var buf bytes.Buffer

	if isYAML(file) {
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(a); err != nil {
			return err
		}
		if err := encoder.Close(); err != nil {
			return err
		}
	} else {
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "   ")
		if err := encoder.Encode(a); err != nil {
			return err
		}
	}

	if file == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0644)
}

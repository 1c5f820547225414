// Copyright 2022
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-fx/common"
)

var _ = Describe("Cache", func() {
	BeforeEach(func() {
		common.SetupCache()
	})

	It("round trips values through compression", func() {
		payload := []byte(`{"chart":{"result":[{"timestamp":[1735540200]}]}}`)
		Expect(common.CacheSet("yahoo:EURUSD=X:1:2", payload)).To(BeNil())

		got, err := common.CacheGet("yahoo:EURUSD=X:1:2")
		Expect(err).To(BeNil())
		Expect(got).To(Equal(payload))
	})

	It("returns an empty value on a miss", func() {
		got, err := common.CacheGet("yahoo:missing:0:0")
		Expect(err).To(BeNil())
		Expect(got).To(BeEmpty())
	})

	It("handles large values", func() {
		payload := make([]byte, 1<<16)
		for i := range payload {
			payload[i] = byte(i % 251)
		}
		Expect(common.CacheSet("bulk", payload)).To(BeNil())

		got, err := common.CacheGet("bulk")
		Expect(err).To(BeNil())
		Expect(got).To(Equal(payload))
	})
})

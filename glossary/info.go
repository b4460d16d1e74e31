// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package glossary

// Info is ordered glossary metadata.
type Info struct {
	keys   []string
	values map[string]string
}

// Set sets the value of key. New keys are appended after existing keys.
func (i *Info) Set(key, value string) {
	if i.values == nil {
		i.values = map[string]string{}
	}
	if _, ok := i.values[key]; !ok {
		i.keys = append(i.keys, key)
	}
	i.values[key] = value
}

// Value returns the value of key or an empty string.
func (i *Info) Value(key string) string {
	if i == nil {
		return ""
	}
	return i.values[key]
}

// Keys returns the keys in insertion order.
func (i *Info) Keys() []string {
	if i == nil {
		return nil
	}
	return i.keys
}

// Copyright 2025 walteh LLC
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

/*
Package reconcile diffs the local page tree against a remote snapshot.

	+-----------+     +--------------+
	| page.Tree |     | remote state |
	| (local)   |     | (by title)   |
	+-----+-----+     +------+-------+
	      |                  |
	      +---------+--------+
	                |
	        +-------+-------+
	        |   Reconcile   |
	        | (pure diff)   |
	        +-------+-------+
	                |
	          []Op: Create / Update / NoChange / Orphan

🎯 Purpose:
- Decides what each page needs: Create, Update, NoChange or Orphan
- Emits operations in pre-order so parents always precede children
- Detects remote pages that no longer have a local counterpart

📝 Design Philosophy:
Reconcile performs no I/O of any kind. All three execution modes share
the same decision function; only the interpretation of the resulting
operations differs. Fingerprints decide content equality, so the package
never needs to diff markup semantically.
*/
package reconcile
